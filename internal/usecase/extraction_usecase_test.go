package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/cvparse"
	"github.com/fadilmartias/harvard-cv/internal/model"
	"github.com/fadilmartias/harvard-cv/internal/progress"
	"github.com/fadilmartias/harvard-cv/internal/ratelimit"
	"github.com/fadilmartias/harvard-cv/internal/resume"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiter struct {
	allow bool
	calls int
}

func (f *fakeLimiter) CheckAndConsume(_ context.Context, _ string) ratelimit.Decision {
	f.calls++
	if !f.allow {
		return ratelimit.Decision{Allowed: false, Limit: 3, RetryAfter: time.Hour, Reason: ratelimit.ReasonExceeded}
	}
	return ratelimit.Decision{Allowed: true, Limit: 3, Remaining: 2, Reason: ratelimit.ReasonOK}
}

type fakePDF struct {
	text  string
	err   error
	calls int
}

func (f *fakePDF) ExtractText(_ context.Context, _ []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeLLM struct {
	reply  string
	err    error
	prompt string
	wait   bool
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []progress.Event
}

func (p *recordingPublisher) Publish(e progress.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) stages() []progress.Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]progress.Stage, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Stage)
	}
	return out
}

type fakeRecorder struct {
	created []model.Extraction
	updated []model.Extraction
	err     error
}

func (r *fakeRecorder) CreateExtraction(_ context.Context, e *model.Extraction) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *e)
	return nil
}

func (r *fakeRecorder) UpdateExtraction(_ context.Context, e *model.Extraction) error {
	if r.err != nil {
		return r.err
	}
	r.updated = append(r.updated, *e)
	return nil
}

type fixture struct {
	limiter   *fakeLimiter
	pdf       *fakePDF
	llm       *fakeLLM
	publisher *recordingPublisher
	recorder  *fakeRecorder
	uc        *ExtractionUsecase
}

func newFixture(timeout time.Duration) *fixture {
	f := &fixture{
		limiter:   &fakeLimiter{allow: true},
		pdf:       &fakePDF{text: linkedInText},
		llm:       &fakeLLM{reply: modelReply},
		publisher: &recordingPublisher{},
		recorder:  &fakeRecorder{},
	}
	f.uc = NewExtractionUsecase(f.limiter, f.pdf, f.llm, f.publisher, f.recorder, timeout)
	return f
}

func upload() Upload {
	return Upload{RequestID: uuid.NewString(), ClientID: "203.0.113.7", PDF: []byte("%PDF-1.4")}
}

func TestProcessHappyPath(t *testing.T) {
	f := newFixture(time.Second)
	in := upload()

	res, err := f.uc.Process(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, in.RequestID, res.RequestID)
	assert.Equal(t, resume.LocaleEN, res.Locale)
	assert.Equal(t, linkedInText, res.RawText)
	assert.Equal(t, "Jane Doe", res.CV.Name)
	require.Len(t, res.CV.Experience, 1)
	assert.Equal(t, "jane.doe@example.com", res.CV.Contact.Email)
	assert.True(t, res.Decision.Allowed)
	assert.Contains(t, f.llm.prompt, "Acme Corp")

	assert.Equal(t, []progress.Stage{
		progress.StageReceived,
		progress.StageRateChecked,
		progress.StageTextExtracted,
		progress.StageLanguageDetected,
		progress.StageSegmented,
		progress.StagePromptBuilt,
		progress.StageModelCalled,
		progress.StageSanitized,
		progress.StageValidated,
		progress.StageDone,
	}, f.publisher.stages())
	for _, e := range f.publisher.events {
		assert.Equal(t, in.RequestID, e.RequestID)
	}

	require.Len(t, f.recorder.created, 1)
	assert.Equal(t, in.RequestID, f.recorder.created[0].ID.String())
	require.NotEmpty(t, f.recorder.updated)
	last := f.recorder.updated[len(f.recorder.updated)-1]
	assert.Equal(t, model.ExtractionStatusCompleted, last.Status)
	assert.Equal(t, "en", last.Locale)
	assert.NotContains(t, last.CV, "```")
}

func TestProcessRateLimited(t *testing.T) {
	f := newFixture(time.Second)
	f.limiter.allow = false

	_, err := f.uc.Process(context.Background(), upload())
	require.ErrorIs(t, err, ErrRateLimited)

	var rl *RateLimitedError
	require.True(t, errors.As(err, &rl))
	assert.Equal(t, time.Hour, rl.Decision.RetryAfter)
	assert.Zero(t, f.pdf.calls, "no work after a denial")
	assert.Empty(t, f.recorder.created)
	assert.Equal(t, []progress.Stage{progress.StageReceived, progress.StageFailed}, f.publisher.stages())
	assert.Equal(t, "Too many requests", f.publisher.events[1].Message)
}

func TestProcessNotLinkedIn(t *testing.T) {
	f := newFixture(time.Second)
	f.pdf.text = "Curriculum vitae\nJane Doe\nExperience\nEducation"

	_, err := f.uc.Process(context.Background(), upload())
	require.ErrorIs(t, err, ErrNotLinkedIn)
	assert.Empty(t, f.llm.prompt)

	last := f.recorder.updated[len(f.recorder.updated)-1]
	assert.Equal(t, model.ExtractionStatusFailed, last.Status)
	assert.Equal(t, string(progress.StageRateChecked), last.Stage)
}

func TestProcessUnsupportedLocale(t *testing.T) {
	f := newFixture(time.Second)
	f.pdf.text = "Kontakt\nwww.linkedin.com/in/hans\nZusammenfassung\nBerufserfahrung\nAusbildung"

	_, err := f.uc.Process(context.Background(), upload())
	require.ErrorIs(t, err, resume.ErrUnsupportedLocale)
	stages := f.publisher.stages()
	assert.Equal(t, progress.StageFailed, stages[len(stages)-1])
	assert.Contains(t, f.publisher.events[len(stages)-1].Message, "Cannot format data")
}

func TestProcessExtractError(t *testing.T) {
	f := newFixture(time.Second)
	f.pdf.err = errors.New("corrupt xref")

	_, err := f.uc.Process(context.Background(), upload())
	require.Error(t, err)
	assert.Equal(t, "Failed to process PDF", FailureMessage(err))
}

func TestProcessMalformedModelOutput(t *testing.T) {
	f := newFixture(time.Second)
	f.llm.reply = "Sorry, I cannot help with that."

	_, err := f.uc.Process(context.Background(), upload())
	require.ErrorIs(t, err, cvparse.ErrMalformedOutput)
	assert.Equal(t, "Failed to process PDF", FailureMessage(err))
}

func TestProcessSchemaViolation(t *testing.T) {
	f := newFixture(time.Second)
	f.llm.reply = `{"name": "Jane"}`

	_, err := f.uc.Process(context.Background(), upload())
	require.ErrorIs(t, err, cvparse.ErrSchemaViolation)
}

func TestProcessModelTimeout(t *testing.T) {
	f := newFixture(20 * time.Millisecond)
	f.llm.wait = true

	start := time.Now()
	_, err := f.uc.Process(context.Background(), upload())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestProcessRecorderFailureIsNotFatal(t *testing.T) {
	f := newFixture(time.Second)
	f.recorder.err = errors.New("connection refused")

	res, err := f.uc.Process(context.Background(), upload())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", res.CV.Name)
}

func TestProcessWithoutOptionalCollaborators(t *testing.T) {
	uc := NewExtractionUsecase(&fakeLimiter{allow: true}, &fakePDF{text: linkedInText}, &fakeLLM{reply: modelReply}, nil, nil, 0)

	res, err := uc.Process(context.Background(), upload())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", res.CV.Name)
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&RateLimitedError{}, "Too many requests"},
		{ErrNotLinkedIn, "Not a LinkedIn resume"},
		{&resume.AnchorNotFoundError{Section: resume.SectionExperience}, "Cannot format data: a resume section is missing"},
		{errors.New("boom"), "Failed to process PDF"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FailureMessage(tt.err))
	}
}
