package listen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatistics_Message(t *testing.T) {
	assert.Equal(t, "0 tests, 0 passed, 0 failed", Statistics{}.Message())
	assert.Equal(t, "1 test, 1 passed, 0 failed", Statistics{Passed: 1}.Message())
	assert.Equal(t, "4 tests, 1 passed, 2 failed, 1 skipped", Statistics{Passed: 1, Failed: 2, Skipped: 1}.Message())
}

func TestKeywordResult_FullName(t *testing.T) {
	assert.Equal(t, "BuiltIn.Log", (&KeywordResult{Name: "Log", Owner: "BuiltIn"}).FullName())
	assert.Equal(t, "My Keyword", (&KeywordResult{Name: "My Keyword"}).FullName())
}

func TestTiming_Elapsed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2*time.Second, Timing{StartTime: start, EndTime: start.Add(2 * time.Second)}.Elapsed())
	assert.Zero(t, Timing{StartTime: start}.Elapsed())
	assert.Zero(t, Timing{}.Elapsed())
}

func TestSuiteData_TestCount(t *testing.T) {
	var nilSuite *SuiteData
	suite := &SuiteData{
		Tests: []*TestData{{}, {}},
		Suites: []*SuiteData{
			{Tests: []*TestData{{}}},
			{Suites: []*SuiteData{{Tests: []*TestData{{}, {}}}}},
		},
	}

	assert.Equal(t, 0, nilSuite.TestCount())
	assert.Equal(t, 5, suite.TestCount())
}

func TestForIterationResult_LogName(t *testing.T) {
	r := &ForIterationResult{Assign: []Assignment{{Name: "${a}", Value: "1"}, {Name: "${b}", Value: "x y"}}}

	assert.Equal(t, "${a} = 1, ${b} = x y", r.LogName())
}
