package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/KaramelBytes/aicontext-cli/internal/kb"
	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

// UsageSummary aggregates a set of file records. MostActive is the zero record and
// LastModified the zero time when there are no records.
type UsageSummary struct {
	TotalWords      int              `json:"total_words" yaml:"total_words"`
	TotalLines      int              `json:"total_lines" yaml:"total_lines"`
	TotalTokens     int              `json:"total_tokens" yaml:"total_tokens"`
	ByCategory      map[Category]int `json:"by_category" yaml:"by_category"`
	MostActive      FileRecord       `json:"most_active" yaml:"most_active"`
	LastModified    time.Time        `json:"last_modified" yaml:"last_modified"`
	Recommendations []string         `json:"recommendations" yaml:"recommendations"`
	Files           []FileRecord     `json:"files" yaml:"files"`
}

// Stats extends the usage summary with knowledge base level counts.
type Stats struct {
	UsageSummary `yaml:",inline"`

	TotalFiles          int `json:"total_files" yaml:"total_files"`
	ConversationEntries int `json:"conversation_entries" yaml:"conversation_entries"`
}

// Thresholds drive the usage recommendations. Values are token estimates.
type Thresholds struct {
	Archive   int
	Split     int
	LargeFile int
}

// DefaultThresholds returns the stock recommendation thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Archive: 50000, Split: 100000, LargeFile: 10000}
}

// Summarize aggregates records using the default thresholds.
func Summarize(records []FileRecord) UsageSummary {
	return summarize(records, DefaultThresholds())
}

// Summarize aggregates records using the analyzer's thresholds.
func (a *Analyzer) Summarize(records []FileRecord) UsageSummary {
	return summarize(records, a.thresholds)
}

func summarize(records []FileRecord, th Thresholds) UsageSummary {
	s := UsageSummary{
		ByCategory: make(map[Category]int),
		Files:      append([]FileRecord(nil), records...),
	}
	for i, r := range records {
		s.TotalWords += r.Words
		s.TotalLines += r.Lines
		s.TotalTokens += r.Tokens
		s.ByCategory[r.Category] += r.Tokens
		if i == 0 || r.Words > s.MostActive.Words {
			s.MostActive = r
		}
		if r.LastModified.After(s.LastModified) {
			s.LastModified = r.LastModified
		}
	}
	s.Recommendations = th.Recommend(s.TotalTokens, records)
	return s
}

// Recommend applies the default thresholds.
func Recommend(totalTokens int, records []FileRecord) []string {
	return DefaultThresholds().Recommend(totalTokens, records)
}

// Recommend returns advisory messages. Rules are independent and reported in a fixed
// order; when none applies a single "normal range" message is returned.
func (t Thresholds) Recommend(totalTokens int, records []FileRecord) []string {
	var out []string
	if totalTokens > t.Archive {
		out = append(out, "Consider archiving old conversation logs to reduce token usage")
	}
	if totalTokens > t.Split {
		out = append(out, "Token usage is very high - consider splitting into multiple knowledge bases")
	}
	var large []string
	for _, r := range records {
		if r.Tokens > t.LargeFile {
			large = append(large, r.Name)
		}
	}
	if len(large) > 0 {
		out = append(out, fmt.Sprintf("Large files detected: %s", strings.Join(large, ", ")))
	}
	if len(out) == 0 {
		out = append(out, "Token usage is within normal range")
	}
	return out
}

// Conversation log entries start with a level-two markdown heading.
var entryHeading = regexp.MustCompile(`(?m)^##\s+`)

// CountConversationEntries counts "## " headings in the conversation log. A missing log
// counts as zero entries.
func CountConversationEntries(layout kb.Layout) (int, error) {
	if !utils.Exists(layout.ConversationLog) {
		return 0, nil
	}
	content, err := utils.ReadText(layout.ConversationLog)
	if err != nil {
		return 0, err
	}
	return CountEntries(content), nil
}

// CountEntries counts entry headings in conversation log text.
func CountEntries(content string) int {
	return len(entryHeading.FindAllStringIndex(content, -1))
}

// Stats runs a full analysis pass and adds the conversation entry count.
func (a *Analyzer) Stats(layout kb.Layout) (*Stats, error) {
	records, err := a.Analyze(layout)
	if err != nil {
		return nil, err
	}
	entries, err := CountConversationEntries(layout)
	if err != nil {
		return nil, err
	}
	return &Stats{
		UsageSummary:        a.Summarize(records),
		TotalFiles:          len(records),
		ConversationEntries: entries,
	}, nil
}
