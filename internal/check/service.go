package check

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"claimcheck/internal/classify"
	"claimcheck/internal/ledger"
	"claimcheck/internal/quota"
	"claimcheck/internal/search"
)

// MaxStatementLength bounds user-submitted claims.
const MaxStatementLength = 500

const (
	tooLongExplanation      = "Please limit your input to 500 characters."
	limitReachedExplanation = "You have reached your daily usage limit."
	usageUnavailableMessage = "Usage records are currently unavailable."
)

// Searcher retrieves web evidence for a claim.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Classifier produces the raw model output for a claim and its evidence.
type Classifier interface {
	Classify(ctx context.Context, claim string, evidence []search.Result) (string, error)
}

// Result is the structured outcome of one claim check. Every terminal
// outcome produces this same shape; only the field values differ.
type Result struct {
	Statement   string          `json:"statement"`
	Verdict     string          `json:"verdict"`
	Explanation string          `json:"explanation"`
	Sources     []search.Result `json:"sources"`
	UsageCount  int             `json:"usage_count"`
	DailyLimit  int             `json:"daily_limit"`
}

// Service sequences quota check, evidence retrieval, classification and the
// ledger/usage updates for each incoming claim.
type Service struct {
	searcher   Searcher
	classifier Classifier
	usage      *quota.Tracker
	ledger     *ledger.Ledger

	// Serializes the usage read-modify-write across requests so
	// concurrent checks on the same day cannot lose increments.
	mu sync.Mutex
}

// NewService wires the orchestrator.
func NewService(searcher Searcher, classifier Classifier, usage *quota.Tracker, led *ledger.Ledger) *Service {
	return &Service{
		searcher:   searcher,
		classifier: classifier,
		usage:      usage,
		ledger:     led,
	}
}

// Check runs the claim through the pipeline. It never fails: every external
// or persistence problem degrades to a sentinel value inside a well-formed
// result.
func (s *Service) Check(ctx context.Context, statement string) Result {
	limit := s.usage.Limit()

	if utf8.RuneCountInString(statement) > MaxStatementLength {
		return Result{
			Statement:   statement,
			Verdict:     classify.VerdictInputTooLong,
			Explanation: tooLongExplanation,
			Sources:     []search.Result{},
			UsageCount:  0,
			DailyLimit:  limit,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today, count, record, err := s.usage.ReadUsage()
	if err != nil {
		// A corrupt usage record must not be clobbered by a blind
		// write-back, so the request terminates here.
		logrus.WithError(err).Error("usage log unavailable")
		return Result{
			Statement:   statement,
			Verdict:     classify.VerdictUnknown,
			Explanation: usageUnavailableMessage,
			Sources:     []search.Result{},
			UsageCount:  0,
			DailyLimit:  limit,
		}
	}

	if count >= limit {
		return Result{
			Statement:   statement,
			Verdict:     classify.VerdictLimitReached,
			Explanation: limitReachedExplanation,
			Sources:     []search.Result{},
			UsageCount:  count,
			DailyLimit:  limit,
		}
	}

	sources, err := s.searcher.Search(ctx, statement)
	if err != nil {
		logrus.WithError(err).Warn("web search failed")
		sources = []search.Result{search.ErrorResult(err)}
	}

	raw, err := s.classifier.Classify(ctx, statement, sources)
	if err != nil {
		logrus.WithError(err).Warn("classification request failed")
		raw = classify.GPTErrorMessage(err)
	}

	verdict, explanation, ok := classify.Parse(raw)
	if ok {
		if err := s.ledger.Increment(verdict); err != nil {
			logrus.WithError(err).Warn("record verdict count")
		}
	}

	// One unit of quota is consumed once past the quota check, even when
	// classification degraded to Unknown.
	if err := s.usage.WriteUsage(today, count+1, record); err != nil {
		logrus.WithError(err).Warn("persist usage log")
	}

	return Result{
		Statement:   statement,
		Verdict:     verdict,
		Explanation: explanation,
		Sources:     sources,
		UsageCount:  count + 1,
		DailyLimit:  limit,
	}
}
