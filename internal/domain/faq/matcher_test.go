package faq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestMatcher_ExampleCatalog(t *testing.T) {
	m := NewMatcher(staticSource{
		{Question: "What are your hours?", Answer: "9am-5pm"},
		{Question: "Where are you located?", Answer: "123 Main St"},
	}, newTestLogger())

	require.Equal(t, "9am-5pm", m.Answer(context.Background(), "what are your hours"))
	require.Equal(t, "123 Main St", m.Answer(context.Background(), "Where are you located?"))
	require.Equal(t, MessageNotFound, m.Answer(context.Background(), "asdkjasdkj"))
}

func TestMatcher_EmptyCatalog(t *testing.T) {
	m := NewMatcher(staticSource{}, newTestLogger())

	for _, input := range []string{"", "   ", "what are your hours", "asdkjasdkj"} {
		res := m.Match(context.Background(), input)
		require.Equal(t, MessageUnavailable, res.Answer)
		require.Equal(t, OutcomeUnavailable, res.Outcome)
	}
}

func TestMatcher_NormalizationInvariance(t *testing.T) {
	m := NewMatcher(staticSource{
		{Question: "What is Python?", Answer: "A programming language."},
		{Question: "What is Go?", Answer: "Another programming language."},
	}, newTestLogger())

	plain := m.Answer(context.Background(), "What is Python?")
	shouted := m.Answer(context.Background(), "  WHAT IS PYTHON?  ")
	require.Equal(t, "A programming language.", plain)
	require.Equal(t, plain, shouted)

	wrapped := m.Match(context.Background(), "\x1cWhat is Python?\x1f")
	require.Equal(t, "A programming language.", wrapped.Answer)
	require.Equal(t, 1.0, wrapped.Score)
}

func TestMatcher_TieBreakPrefersEarliest(t *testing.T) {
	m := NewMatcher(staticSource{
		{Question: "abcd", Answer: "first"},
		{Question: "abce", Answer: "second"},
	}, newTestLogger())

	res := m.Match(context.Background(), "abc")
	require.Equal(t, OutcomeMatched, res.Outcome)
	require.Equal(t, "first", res.Answer)
	require.InDelta(t, 6.0/7.0, res.Score, 1e-9)
}

func TestMatcher_DuplicateQuestionsUseFirstEntry(t *testing.T) {
	m := NewMatcher(staticSource{
		{Question: "Do you ship abroad?", Answer: "Yes, worldwide."},
		{Question: "do you ship abroad?", Answer: "No."},
	}, newTestLogger())

	require.Equal(t, "Yes, worldwide.", m.Answer(context.Background(), "DO YOU SHIP ABROAD?"))
}

func TestMatcher_CutoffIsInclusive(t *testing.T) {
	m := NewMatcher(staticSource{{Question: "ab", Answer: "yes"}}, newTestLogger())

	res := m.Match(context.Background(), "ax")
	require.Equal(t, OutcomeMatched, res.Outcome)
	require.Equal(t, "yes", res.Answer)
	require.Equal(t, 0.5, res.Score)

	require.Equal(t, MessageNotFound, m.Answer(context.Background(), "xy"))
}

func TestMatcher_AnswerReturnedVerbatim(t *testing.T) {
	answer := "  Line one.\nLine two with  double  spaces.  "
	m := NewMatcher(staticSource{{Question: "Multi line?", Answer: answer}}, newTestLogger())

	require.Equal(t, answer, m.Answer(context.Background(), "multi line?"))
}

func TestMatcher_EmptyInputNotFound(t *testing.T) {
	m := NewMatcher(staticSource{{Question: "What are your hours?", Answer: "9am-5pm"}}, newTestLogger())

	require.Equal(t, MessageNotFound, m.Answer(context.Background(), ""))
	require.Equal(t, MessageNotFound, m.Answer(context.Background(), " \t "))
}

func TestMatcher_SkipsBlankQuestions(t *testing.T) {
	m := NewMatcher(staticSource{
		{Question: "   ", Answer: "blank"},
		{Question: "hello", Answer: "hi"},
	}, newTestLogger())

	require.Equal(t, MessageNotFound, m.Answer(context.Background(), ""))
	require.Equal(t, "hi", m.Answer(context.Background(), "hello"))
}

func TestMatcher_RecoversFromPanics(t *testing.T) {
	m := NewMatcher(panicSource{}, newTestLogger())

	res := m.Match(context.Background(), "anything")
	require.Equal(t, OutcomeError, res.Outcome)
	require.Equal(t, MessageInternalError, res.Answer)

	var nilCatalog CatalogSource
	m = NewMatcher(nilCatalog, newTestLogger())
	require.Equal(t, MessageInternalError, m.Answer(context.Background(), "anything"))
}

func TestMatcher_ConcurrentCalls(t *testing.T) {
	m := NewMatcher(staticSource{
		{Question: "What are your hours?", Answer: "9am-5pm"},
		{Question: "Where are you located?", Answer: "123 Main St"},
	}, newTestLogger())

	inputs := []string{"what are your hours", "where are you located"}
	want := []string{"9am-5pm", "123 Main St"}
	got := make([]string, 32)

	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = m.Answer(context.Background(), inputs[i%2])
		}(i)
	}
	wg.Wait()

	for i, answer := range got {
		require.Equal(t, want[i%2], answer)
	}
}

func TestMatcher_GoldenAnswers(t *testing.T) {
	m := NewMatcher(staticSource{
		{Question: "What are your hours?", Answer: "We are open 9am-5pm, Monday to Friday."},
		{Question: "Where are you located?", Answer: "123 Main St, Springfield."},
		{Question: "How do I reset my password?", Answer: "Use the 'Forgot password' link on the login page."},
		{Question: "Do you offer refunds?", Answer: "Refunds are available within 30 days of purchase."},
	}, newTestLogger())

	inputs := []string{
		"what are your hours",
		"  WHERE ARE YOU LOCATED?  ",
		"how do i reset my password",
		"Do you offer refunds",
		"asdkjasdkj",
		"",
	}

	var buf bytes.Buffer
	for _, input := range inputs {
		fmt.Fprintf(&buf, "%q => %q\n", input, m.Answer(context.Background(), input))
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "matcher_answers", buf.Bytes())
}

type staticSource []Entry

func (s staticSource) Entries(context.Context) []Entry {
	return s
}

type panicSource struct{}

func (panicSource) Entries(context.Context) []Entry {
	panic("catalog exploded")
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}
