package essaytopic

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studytrack/internal/core"
)

func TestDailyIsStableWithinADay(t *testing.T) {
	morning := time.Date(2024, time.May, 2, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.May, 2, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, Daily(morning), Daily(evening))
}

func TestDailyCategoryRotation(t *testing.T) {
	start := time.Date(2023, time.January, 1, 12, 0, 0, 0, time.UTC)
	counts := map[string]int{}
	for i := 0; i < 300; i++ {
		day := start.AddDate(0, 0, i)
		topic := Daily(day)
		counts[topic.Category]++
		assert.NotEmpty(t, topic.Prompt)

		doy := day.YearDay()
		if doy%10 < 6 {
			assert.Equal(t, Technology, topic.Category, "day %d", doy)
		} else {
			assert.NotEqual(t, Technology, topic.Category, "day %d", doy)
		}
	}
	assert.Equal(t, 180, counts[Technology])
	assert.Len(t, counts, 4)
}

func TestDailyPicksPromptByDay(t *testing.T) {
	// day 3 of the year is a technology day
	day := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	topic := Daily(day)
	assert.Equal(t, Technology, topic.Category)
	assert.Equal(t, prompts[Technology][3], topic.Prompt)
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		topic := Random(rng)
		list, err := Prompts(topic.Category)
		require.NoError(t, err)
		assert.Contains(t, list, topic.Prompt)
	}
}

func TestPromptsUnknownCategory(t *testing.T) {
	_, err := Prompts("astrology")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
