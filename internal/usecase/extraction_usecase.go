package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/cvparse"
	"github.com/fadilmartias/harvard-cv/internal/model"
	"github.com/fadilmartias/harvard-cv/internal/progress"
	"github.com/fadilmartias/harvard-cv/internal/ratelimit"
	"github.com/fadilmartias/harvard-cv/internal/resume"
	"github.com/fadilmartias/harvard-cv/internal/service"
	"github.com/google/uuid"
)

var (
	ErrNotLinkedIn = errors.New("not a LinkedIn resume")
	ErrRateLimited = errors.New("too many requests")
)

// RateLimitedError carries the denial so the transport can set headers.
type RateLimitedError struct {
	Decision ratelimit.Decision
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded: retry after %s", e.Decision.RetryAfter)
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

// RateLimiter is satisfied by *ratelimit.Limiter.
type RateLimiter interface {
	CheckAndConsume(ctx context.Context, clientID string) ratelimit.Decision
}

// Publisher is satisfied by *progress.Hub.
type Publisher interface {
	Publish(e progress.Event)
}

// ExtractionRecorder is satisfied by *repository.ExtractionRepository.
type ExtractionRecorder interface {
	CreateExtraction(ctx context.Context, extraction *model.Extraction) error
	UpdateExtraction(ctx context.Context, extraction *model.Extraction) error
}

type Upload struct {
	RequestID string
	ClientID  string
	PDF       []byte
}

type Result struct {
	RequestID string
	CV        *model.CV
	RawText   string
	Locale    resume.Locale
	Decision  ratelimit.Decision
}

type ExtractionUsecase struct {
	limiter    RateLimiter
	pdf        service.PDFServiceInterface
	llm        service.LLMServiceInterface
	publisher  Publisher
	recorder   ExtractionRecorder
	llmTimeout time.Duration
}

// NewExtractionUsecase wires the pipeline. publisher and recorder may be nil.
func NewExtractionUsecase(limiter RateLimiter, pdf service.PDFServiceInterface, llm service.LLMServiceInterface, publisher Publisher, recorder ExtractionRecorder, llmTimeout time.Duration) *ExtractionUsecase {
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &ExtractionUsecase{
		limiter:    limiter,
		pdf:        pdf,
		llm:        llm,
		publisher:  publisher,
		recorder:   recorder,
		llmTimeout: llmTimeout,
	}
}

// Process runs one upload through every stage. The returned error is one of
// ErrRateLimited, ErrNotLinkedIn or a wrapped stage failure.
func (uc *ExtractionUsecase) Process(ctx context.Context, in Upload) (*Result, error) {
	run := &pipelineRun{uc: uc, requestID: in.RequestID}
	run.advance(progress.StageReceived, "Upload received")

	decision := uc.limiter.CheckAndConsume(ctx, in.ClientID)
	if !decision.Allowed {
		return nil, run.fail(ctx, &RateLimitedError{Decision: decision})
	}
	run.advance(progress.StageRateChecked, "Rate limit passed")
	run.start(ctx, in.ClientID)

	text, err := uc.pdf.ExtractText(ctx, in.PDF)
	if err != nil {
		return nil, run.fail(ctx, fmt.Errorf("extract text: %w", err))
	}
	if !resume.IsLinkedInExport(text) {
		return nil, run.fail(ctx, ErrNotLinkedIn)
	}
	run.rawText = text
	run.advance(progress.StageTextExtracted, "Text extracted")

	locale := resume.Detect(text)
	run.locale = locale
	run.advance(progress.StageLanguageDetected, "Detected language: "+locale.String())

	sections, err := resume.Segment(text, locale)
	if err != nil {
		return nil, run.fail(ctx, fmt.Errorf("segment resume: %w", err))
	}
	run.advance(progress.StageSegmented, "Sections located")

	prompt, err := resume.BuildPrompt(sections, locale)
	if err != nil {
		return nil, run.fail(ctx, fmt.Errorf("build prompt: %w", err))
	}
	run.advance(progress.StagePromptBuilt, "Prompt ready")

	output, err := uc.generate(ctx, prompt)
	if err != nil {
		return nil, run.fail(ctx, fmt.Errorf("model call: %w", err))
	}
	run.advance(progress.StageModelCalled, "Model replied")

	cleaned := cvparse.StripCodeFence(output)
	run.advance(progress.StageSanitized, "Output sanitized")

	cv, err := cvparse.ParseAndValidate(cleaned)
	if err != nil {
		return nil, run.fail(ctx, fmt.Errorf("validate output: %w", err))
	}
	run.advance(progress.StageValidated, "CV validated")

	run.complete(ctx, cleaned)
	run.advance(progress.StageDone, "Done")

	return &Result{
		RequestID: in.RequestID,
		CV:        cv,
		RawText:   text,
		Locale:    locale,
		Decision:  decision,
	}, nil
}

func (uc *ExtractionUsecase) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.llmTimeout)
	defer cancel()
	return uc.llm.GenerateJSON(ctx, prompt)
}

// FailureMessage is the client-facing text for a pipeline error.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "Too many requests"
	case errors.Is(err, ErrNotLinkedIn):
		return "Not a LinkedIn resume"
	case errors.Is(err, resume.ErrUnsupportedLocale):
		return "Cannot format data: resume language not supported"
	case errors.Is(err, resume.ErrAnchorNotFound):
		return "Cannot format data: a resume section is missing"
	default:
		return "Failed to process PDF"
	}
}

// pipelineRun tracks the stage reached and the stored record for one call.
type pipelineRun struct {
	uc        *ExtractionUsecase
	requestID string
	stage     progress.Stage
	locale    resume.Locale
	rawText   string
	record    *model.Extraction
}

func (r *pipelineRun) advance(stage progress.Stage, message string) {
	r.stage = stage
	r.publish(stage, message)
}

func (r *pipelineRun) publish(stage progress.Stage, message string) {
	if r.uc.publisher == nil {
		return
	}
	r.uc.publisher.Publish(progress.Event{
		RequestID: r.requestID,
		Stage:     stage,
		Message:   message,
		At:        time.Now(),
	})
}

// fail logs the cause, marks the record and emits the terminal event. It
// returns err unchanged.
func (r *pipelineRun) fail(ctx context.Context, err error) error {
	log.Printf("Extraction %s failed after %s: %v", r.requestID, r.stage, err)
	r.publish(progress.StageFailed, FailureMessage(err))

	if r.record != nil {
		r.record.Status = model.ExtractionStatusFailed
		r.record.Stage = string(r.stage)
		r.record.Locale = r.locale.String()
		r.record.Error = err.Error()
		r.save(ctx)
	}
	return err
}

func (r *pipelineRun) start(ctx context.Context, clientID string) {
	if r.uc.recorder == nil {
		return
	}
	id, err := uuid.Parse(r.requestID)
	if err != nil {
		id = uuid.New()
	}
	record := &model.Extraction{
		ID:       id,
		ClientID: clientID,
		Status:   model.ExtractionStatusProcessing,
		Stage:    string(r.stage),
		CV:       "{}",
	}
	if err := r.uc.recorder.CreateExtraction(context.WithoutCancel(ctx), record); err != nil {
		log.Printf("Failed to record extraction %s: %v", r.requestID, err)
		return
	}
	r.record = record
}

func (r *pipelineRun) complete(ctx context.Context, cvJSON string) {
	if r.record == nil {
		return
	}
	r.record.Status = model.ExtractionStatusCompleted
	r.record.Stage = string(progress.StageDone)
	r.record.Locale = r.locale.String()
	r.record.RawText = r.rawText
	r.record.CV = cvJSON
	r.save(ctx)
}

func (r *pipelineRun) save(ctx context.Context) {
	if err := r.uc.recorder.UpdateExtraction(context.WithoutCancel(ctx), r.record); err != nil {
		log.Printf("Failed to update extraction %s: %v", r.requestID, err)
	}
}
