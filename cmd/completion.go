package cmd

import (
	"github.com/etnz/drip/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands and their flags for shell completion.
func Completion() *complete.Command {
	series := predict.Or(predict.Files("*.jsonl"), predict.Files("*.csv"))
	yaml := predict.Files("*.yaml")
	topics, _ := docs.GetAllTopics()
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"plain": predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"simulate": {
				Flags: map[string]complete.Predictor{
					"prices":       series,
					"dividends":    series,
					"config":       yaml,
					"name":         predict.Something,
					"investment":   predict.Something,
					"fee":          predict.Something,
					"start-year":   predict.Something,
					"end-year":     predict.Something,
					"v":            predict.Nothing,
					"events":       predict.Nothing,
					"chart-period": predict.Set{"daily", "monthly", "yearly"},
					"journal":      predict.Files("*.db"),
					"chart":        predict.Files("*.csv"),
				},
			},
			"commission": {
				Flags: map[string]complete.Predictor{
					"units":  predict.Something,
					"price":  predict.Something,
					"cash":   predict.Something,
					"config": yaml,
				},
			},
			"fetch": {
				Flags: map[string]complete.Predictor{
					"provider": predict.Set{"dividendcom", "eodhd"},
					"symbol":   predict.Something,
					"o":        predict.Dirs("*"),
				},
			},
			"runs": {
				Flags: map[string]complete.Predictor{
					"journal": predict.Files("*.db"),
					"symbol":  predict.Something,
					"chart":   predict.Something,
				},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"list": predict.Nothing},
				Args:  predict.Set(topics),
			},
		},
	}
}
