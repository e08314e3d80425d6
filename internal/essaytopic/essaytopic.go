// Package essaytopic suggests general-paper essay prompts.
package essaytopic

import (
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/internal/dateutil"
)

const (
	Technology  = "technology"
	Society     = "society"
	Environment = "environment"
	Education   = "education"
)

// Topic is a prompt and the category it was drawn from
type Topic struct {
	Category string `json:"category"`
	Prompt   string `json:"prompt"`
}

var prompts = map[string][]string{
	Technology: {
		"Artificial intelligence now assists with medical diagnosis. Who should be accountable when it is wrong?",
		"Should social media platforms be legally liable for what their users publish?",
		"Beyond cryptocurrency, where could blockchain records genuinely improve public services?",
		"Are self-driving cars worth the moral dilemmas they force engineers to settle in advance?",
		"Has cloud computing made businesses more resilient or more dependent on a few providers?",
		"Do data protection laws such as the GDPR actually change how companies treat personal data?",
		"What could quantum computers change first: cryptography, medicine or climate science?",
		"Has remote work technology improved work-life balance or erased the line between the two?",
		"Can machine learning make a real difference in the fight against climate change?",
		"Is facial recognition in public spaces a security tool or a threat to civil liberties?",
		"Should the largest technology companies be broken up?",
		"How should societies respond to deepfakes and other synthetic media?",
		"Should the exploration of space be left to private companies?",
		"Does recommendation software narrow the views of the people who rely on it?",
		"Is the energy used by data centres a price worth paying for digital services?",
	},
	Society: {
		"Is a universal basic income the answer to jobs lost to automation?",
		"Should voting be compulsory in a democracy?",
		"Is economic inequality the unavoidable cost of a market economy?",
		"Should robots that replace workers be taxed?",
		"Has globalisation enriched or eroded local cultures?",
		"Does the gig economy give workers freedom or take away their protections?",
	},
	Environment: {
		"Can technology alone solve climate change, or must consumption itself fall?",
		"Should nuclear power be part of the move away from fossil fuels?",
		"Are carbon taxes more effective than emissions trading?",
		"Is sustainable growth possible, or does growth always cost the environment?",
	},
	Education: {
		"Should schools put science and mathematics ahead of the humanities?",
		"Has the internet undermined expertise or made knowledge more democratic?",
		"Is the traditional university degree losing its value?",
		"Should programming be a core subject for every pupil?",
	},
}

// others are the categories used on the days technology is not picked.
var others = []string{Society, Environment, Education}

// Categories returns every category name
func Categories() []string {
	return append([]string{Technology}, others...)
}

// Prompts returns the prompts of a category
func Prompts(category string) ([]string, error) {
	list, ok := prompts[category]
	if !ok {
		return nil, errors.Wrapf(core.ErrInvalidInput, "unknown essay category %q", category)
	}
	return append([]string(nil), list...), nil
}

// Daily returns the prompt for the day of t. Six days in ten draw from
// technology, the rest rotate through the other categories every ten days.
func Daily(t time.Time) Topic {
	doy := dateutil.DayOfYear(t)
	category := Technology
	if doy%10 >= 6 {
		category = others[(doy/10)%len(others)]
	}
	list := prompts[category]
	return Topic{Category: category, Prompt: list[doy%len(list)]}
}

// Random picks a category and one of its prompts using rng
func Random(rng *rand.Rand) Topic {
	all := Categories()
	category := all[rng.IntN(len(all))]
	list := prompts[category]
	return Topic{Category: category, Prompt: list[rng.IntN(len(list))]}
}
