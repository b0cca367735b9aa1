// Package riskprofile scores a fixed risk tolerance questionnaire.
package riskprofile

import (
	"fmt"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// Risk tolerance categories.
const (
	CategoryConservative = "Conservative"
	CategoryBalanced     = "Balanced"
	CategoryAggressive   = "Aggressive"
)

var questions = []models.RiskQuestion{
	{
		ID:       "age",
		Question: "What is your age range?",
		Options:  []string{"18-25", "26-35", "36-45", "46-55", "55+"},
		Weights:  []int{5, 4, 3, 2, 1},
	},
	{
		ID:       "income",
		Question: "What percentage of your income do you invest?",
		Options:  []string{"Less than 10%", "10-20%", "20-30%", "30-50%", "More than 50%"},
		Weights:  []int{1, 2, 3, 4, 5},
	},
	{
		ID:       "horizon",
		Question: "What is your investment time horizon?",
		Options:  []string{"Less than 1 year", "1-3 years", "3-5 years", "5-10 years", "More than 10 years"},
		Weights:  []int{1, 2, 3, 4, 5},
	},
	{
		ID:       "volatility",
		Question: "How comfortable are you with portfolio volatility?",
		Options:  []string{"Very uncomfortable", "Somewhat uncomfortable", "Neutral", "Somewhat comfortable", "Very comfortable"},
		Weights:  []int{1, 2, 3, 4, 5},
	},
	{
		ID:       "loss_reaction",
		Question: "If your portfolio dropped 20% in a month, what would you do?",
		Options:  []string{"Sell everything immediately", "Sell some holdings", "Hold and wait", "Buy more at lower prices", "Significantly increase investment"},
		Weights:  []int{1, 2, 3, 4, 5},
	},
	{
		ID:       "experience",
		Question: "How would you describe your investment experience?",
		Options:  []string{"Complete beginner", "Some experience", "Moderate experience", "Experienced", "Very experienced"},
		Weights:  []int{1, 2, 3, 4, 5},
	},
}

var descriptions = map[string]string{
	CategoryConservative: "You prefer stable, low-risk investments with predictable returns. Capital preservation is your priority.",
	CategoryBalanced:     "You're comfortable with moderate risk for potentially higher returns. You seek a balance between growth and stability.",
	CategoryAggressive:   "You're willing to take high risks for potentially high returns. You have a long investment horizon and can tolerate volatility.",
}

var recommendations = map[string][]string{
	CategoryConservative: {
		"Favor large-cap stocks, bonds and fixed deposits over volatile positions",
		"Keep single-sector exposure well below 30% of the portfolio",
		"Review the portfolio quarterly rather than reacting to daily moves",
	},
	CategoryBalanced: {
		"Blend large-cap stability with selective mid-cap growth positions",
		"Spread holdings across at least five unrelated sectors",
		"Rebalance twice a year to keep sector weights near their targets",
	},
	CategoryAggressive: {
		"Growth and mid-cap positions suit your tolerance, but cap any single sector near 40%",
		"Use market corrections to add to high-conviction positions",
		"Revisit the risk questionnaire after major life or income changes",
	},
}

// Questions returns the questionnaire in presentation order.
func Questions() []models.RiskQuestion {
	out := make([]models.RiskQuestion, len(questions))
	copy(out, questions)
	return out
}

// Evaluate scores a set of answers keyed by question ID. Each answer
// must be one of that question's options verbatim; unanswered questions
// score zero, unknown answers are an error.
func Evaluate(answers map[string]string) (models.RiskProfile, error) {
	total := 0
	maxScore := len(questions) * 5

	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok || answer == "" {
			continue
		}
		weight, err := weightFor(q, answer)
		if err != nil {
			return models.RiskProfile{}, err
		}
		total += weight
	}

	score := float64(total) / float64(maxScore) * 100
	category := classify(score)

	return models.RiskProfile{
		Category:        category,
		Score:           score,
		Description:     descriptions[category],
		Recommendations: recommendations[category],
	}, nil
}

func weightFor(q models.RiskQuestion, answer string) (int, error) {
	for i, option := range q.Options {
		if option == answer {
			return q.Weights[i], nil
		}
	}
	return 0, fmt.Errorf("question %s: unknown answer %q", q.ID, answer)
}

func classify(score float64) string {
	switch {
	case score <= 40:
		return CategoryConservative
	case score <= 70:
		return CategoryBalanced
	default:
		return CategoryAggressive
	}
}
