// cmd/tools/evaluate-bid/main.go
//
// Offline evaluation of a bid against a company profile, without Camunda or
// any backing services. Useful for tuning weights and inspecting the engine:
//
//	evaluate-bid -bid edital.json -profile company.json
//	evaluate-bid -bid edital.json -profile company.json -format json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"edital-workers/internal/common/validation"
	"edital-workers/internal/engine/decision"
	"edital-workers/internal/engine/recommendation"
	"edital-workers/internal/engine/scoring"
	"edital-workers/internal/models"
)

type result struct {
	Scores         models.ScoreSet                `json:"viabilityScores"`
	Decision       models.Decision                `json:"decision"`
	Recommendation models.StrategicRecommendation `json:"recommendation"`
}

func main() {
	bidPath := flag.String("bid", "", "Path to the bid JSON file")
	profilePath := flag.String("profile", "", "Path to the company profile JSON file")
	format := flag.String("format", "text", "Output format: text or json")
	asOf := flag.String("as-of", "", "Evaluation date (RFC 3339), defaults to now")
	flag.Parse()

	if *bidPath == "" || *profilePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -bid and -profile are required.")
		flag.Usage()
		os.Exit(1)
	}

	now := time.Now().UTC()
	if *asOf != "" {
		parsed, err := time.Parse(time.RFC3339, *asOf)
		if err != nil {
			fatalf("invalid -as-of value: %v", err)
		}
		now = parsed.UTC()
	}

	bid, err := loadBid(*bidPath)
	if err != nil {
		fatalf("bid: %v", err)
	}
	profile, err := loadProfile(*profilePath)
	if err != nil {
		fatalf("profile: %v", err)
	}

	calculator, err := scoring.NewCalculator(scoring.DefaultWeights)
	if err != nil {
		fatalf("scoring: %v", err)
	}

	scores := calculator.Evaluate(bid, profile, now)
	dec := decision.Evaluate(scores)
	rec := recommendation.Compose(bid, scores, dec, now)

	out := result{Scores: scores, Decision: dec, Recommendation: rec}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fatalf("encode: %v", err)
		}
	case "text":
		printText(bid, out)
	default:
		fatalf("unknown format %q", *format)
	}
}

func loadBid(path string) (*models.BidDescriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	vr, err := validation.ValidateBid(raw)
	if err != nil {
		return nil, err
	}
	if !vr.Valid {
		return nil, fmt.Errorf("invalid document: %v", vr.GetErrorMessages())
	}

	var bid models.BidDescriptor
	if err := json.Unmarshal(raw, &bid); err != nil {
		return nil, err
	}
	return &bid, nil
}

func loadProfile(path string) (*models.CompanyProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	vr, err := validation.ValidateProfile(raw)
	if err != nil {
		return nil, err
	}
	if !vr.Valid {
		return nil, fmt.Errorf("invalid document: %v", vr.GetErrorMessages())
	}

	var profile models.CompanyProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func printText(bid *models.BidDescriptor, out result) {
	fmt.Printf("Bid: %s", bid.ID)
	if bid.Number != "" {
		fmt.Printf(" (%s)", bid.Number)
	}
	fmt.Println()

	fmt.Println("\nScores:")
	for _, d := range models.Dimensions {
		fmt.Printf("  %-12s %3d\n", d, out.Scores.Get(d))
	}
	fmt.Printf("  %-12s %3d\n", "final", out.Scores.Final)

	fmt.Printf("\nDecision: %s (confidence %d%%)\n", out.Decision.Outcome, out.Decision.Confidence)
	fmt.Printf("  %s\n", out.Decision.Justification)
	for _, factor := range out.Decision.DecisiveFactors {
		fmt.Printf("  - %s: %d (%s)\n", factor.Name, factor.Score, factor.Polarity)
	}

	rec := out.Recommendation
	fmt.Printf("\nStrategy: %s (priority %s)\n", rec.Strategy, rec.Priority)
	fmt.Printf("Pricing: %s, margin %.1f%%, suggested price %.2f\n",
		rec.Pricing.Label, rec.Pricing.MarginPercent, rec.Pricing.SuggestedPrice)
	fmt.Printf("ROI: %.2f%% (payback %d months, estimated cost %.2f)\n",
		rec.ROI.Percent, rec.ROI.PaybackMonths, rec.ROI.EstimatedCost)

	if rec.Partnership.Needed {
		fmt.Printf("Partnerships: %v\n", rec.Partnership.Types)
	}

	if len(rec.ImmediateActions) > 0 {
		fmt.Println("\nImmediate actions:")
		for _, action := range rec.ImmediateActions {
			fmt.Printf("  - %s\n", action)
		}
	}

	if len(rec.Schedule) > 0 {
		fmt.Println("\nSchedule:")
		for _, m := range rec.Schedule {
			fmt.Printf("  %s -> %s  %s\n",
				m.StartDate.Format("2006-01-02"), m.EndDate.Format("2006-01-02"), m.Activity)
		}
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
