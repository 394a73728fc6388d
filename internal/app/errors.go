package app

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmployeeExists   = errors.New("employee id already exists")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrPlanNotFound     = errors.New("onboarding plan not found")
	ErrTaskNotFound     = errors.New("progress task not found")
)
