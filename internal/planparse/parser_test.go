package planparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PhasesAndTasks(t *testing.T) {
	text := `Week 1: Orientation
- Meet your manager
- Complete HR paperwork
Week 2: Ramp-up
1. Set up development environment
2. Read the team handbook`

	plan := Parse(text)

	require.Len(t, plan.Phases, 2)
	assert.Equal(t, "Week 1: Orientation", plan.Phases[0].Title)
	assert.Equal(t, []string{"Meet your manager", "Complete HR paperwork"}, plan.Phases[0].Tasks)
	assert.Equal(t, "Week 2: Ramp-up", plan.Phases[1].Title)
	assert.Equal(t, []string{"Set up development environment", "Read the team handbook"}, plan.Phases[1].Tasks)
	assert.Equal(t, "custom", plan.Timeline)
}

func TestParse_HeaderKeywordsCaseInsensitive(t *testing.T) {
	text := "PHASE ONE\n- first task\nMonth 2\n- second task\nDay 30 review\n- third task"

	plan := Parse(text)
	require.Len(t, plan.Phases, 3)
	assert.Equal(t, "PHASE ONE", plan.Phases[0].Title)
	assert.Equal(t, "Month 2", plan.Phases[1].Title)
	assert.Equal(t, "Day 30 review", plan.Phases[2].Title)
}

func TestParse_NoHeadersYieldsNoPhases(t *testing.T) {
	plan := Parse("- orphan task one\n- orphan task two\nsome prose")
	assert.Empty(t, plan.Phases)
}

func TestParse_TasksBeforeFirstHeaderDropped(t *testing.T) {
	plan := Parse("- stray task\nWeek 1\n- kept task")

	require.Len(t, plan.Phases, 1)
	assert.Equal(t, []string{"kept task"}, plan.Phases[0].Tasks)
}

// A bulleted line that mentions a scheduling keyword is a header, not a task.
func TestParse_BulletedHeaderWins(t *testing.T) {
	plan := Parse("- Week 1 kickoff\n- unpack laptop")

	require.Len(t, plan.Phases, 1)
	assert.Equal(t, "- Week 1 kickoff", plan.Phases[0].Title)
	assert.Equal(t, []string{"unpack laptop"}, plan.Phases[0].Tasks)
}

func TestParse_ProseUnderHeaderIgnored(t *testing.T) {
	plan := Parse("Week 1\nThis paragraph describes the goals.\n- actual task")

	require.Len(t, plan.Phases, 1)
	assert.Equal(t, []string{"actual task"}, plan.Phases[0].Tasks)
}

func TestParse_EmptyPhaseKept(t *testing.T) {
	plan := Parse("Week 1\nWeek 2\n- only task")

	require.Len(t, plan.Phases, 2)
	assert.Empty(t, plan.Phases[0].Tasks)
	assert.Equal(t, []string{"only task"}, plan.Phases[1].Tasks)
}

func TestParse_TaskPrefixTrimmed(t *testing.T) {
	plan := Parse("Week 1\n- dashed task\n• bulleted task\n3. numbered task")

	require.Len(t, plan.Phases, 1)
	assert.Equal(t, []string{"dashed task", "bulleted task", "numbered task"}, plan.Phases[0].Tasks)
}

// Task detection looks at the first rune, not the first byte, so
// full-width digits open a task line too.
func TestParse_MultiByteDigitTaskLine(t *testing.T) {
	plan := Parse("Week 1\n３. localized task")

	require.Len(t, plan.Phases, 1)
	require.Len(t, plan.Phases[0].Tasks, 1)

	plain := Parse("Week 1\nplain prose line")
	assert.Empty(t, plain.Phases[0].Tasks)
}

func TestParse_OverviewTruncated(t *testing.T) {
	long := strings.Repeat("a", 600)
	plan := Parse(long)
	assert.Len(t, []rune(plan.Overview), 500)

	short := "Week 1\n- task"
	assert.Equal(t, short, Parse(short).Overview)
}
