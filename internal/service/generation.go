package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/questgen-flow/backend/internal/domain"
	"github.com/questgen-flow/backend/internal/logger"
	"github.com/questgen-flow/backend/internal/repository"
)

// Exporter produces the downloadable tabular artifact for a finished
// question set and returns its storage key. Failures are logged by the
// orchestrator but never fail the job.
type Exporter interface {
	Export(ctx context.Context, jobID string, questions []domain.Question) (string, error)
}

// GenerateRequest carries the inputs of one generation job.
type GenerateRequest struct {
	RawText             string
	QuestionLanguage    string
	ExplanationLanguage string
	NumQuestions        int
	OutputFormat        string // "json" or "excel"
}

// GenerationConfig holds tuning knobs for the pipeline.
type GenerationConfig struct {
	Workers   int   // translation fan-out pool size
	BatchSize int   // fill loop batch size
	MaxStalls int   // consecutive non-productive fill iterations before aborting
	Seed      int64 // balancer random seed; 0 draws from the clock
}

// GenerationService coordinates the question generation pipeline: chunk
// planning, the exact-count fill loop, optional translation, alignment,
// balancing, export, and the observable job state in the registry.
type GenerationService struct {
	registry   *JobRegistry
	generator  QuestionGenerator
	translator Translator
	exporter   Exporter
	exams      *repository.ExamRepository
	logger     *logger.Logger
	workers    int
	batchSize  int
	maxStalls  int
	seed       int64
}

// NewGenerationService creates the pipeline coordinator. exporter and
// exams may be nil; the corresponding finalize steps are then skipped.
func NewGenerationService(
	registry *JobRegistry,
	generator QuestionGenerator,
	translator Translator,
	exporter Exporter,
	exams *repository.ExamRepository,
	log *logger.Logger,
	cfg *GenerationConfig,
) *GenerationService {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	maxStalls := cfg.MaxStalls
	if maxStalls <= 0 {
		maxStalls = 20
	}
	return &GenerationService{
		registry:   registry,
		generator:  generator,
		translator: translator,
		exporter:   exporter,
		exams:      exams,
		logger:     log,
		workers:    workers,
		batchSize:  batchSize,
		maxStalls:  maxStalls,
		seed:       cfg.Seed,
	}
}

// Registry exposes the job registry for status queries.
func (s *GenerationService) Registry() *JobRegistry {
	return s.registry
}

// Submit registers a new job and starts the pipeline in a background
// goroutine. The returned job id can be polled immediately; the registry's
// done channel is the internal handle to the running task.
func (s *GenerationService) Submit(req *GenerateRequest) (string, error) {
	if strings.TrimSpace(req.RawText) == "" {
		return "", fmt.Errorf("raw text must not be empty")
	}
	if req.NumQuestions <= 0 {
		return "", fmt.Errorf("number of questions must be positive")
	}

	jobID := uuid.New().String()
	s.registry.Create(jobID)

	go s.run(jobID, req)

	return jobID, nil
}

// run executes the pipeline for one job and converts its error result
// into terminal job state. It is the only goroutine that writes job
// status; workers it spawns append logs only.
func (s *GenerationService) run(jobID string, req *GenerateRequest) {
	ctx := logger.SetJobID(context.Background(), jobID)

	defer func() {
		if r := recover(); r != nil {
			perr := pipelineErrorf(FailureInternal, "Error in question generation: unexpected fault: %v", r)
			logger.CtxError(ctx, "Pipeline panic: job_id=%s, fault=%v", jobID, r)
			s.registry.Fail(jobID, perr.Message)
		}
	}()

	start := time.Now()
	if err := s.generate(ctx, jobID, req); err != nil {
		logger.With(logger.Fields{
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
			logger.FieldStatus:     string(err.Kind),
		}).Error(ctx, "Generation job failed: job_id=%s, error=%s", jobID, err.Message)
		s.registry.Fail(jobID, err.Message)
		return
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldCount:      req.NumQuestions,
	}).Info(ctx, "Generation job completed: job_id=%s", jobID)
}

// generate drives phases 1-4. It returns a PipelineError for the
// unrecoverable failures of phases 1-2; translation and export faults are
// absorbed locally per the error handling contract.
func (s *GenerationService) generate(ctx context.Context, jobID string, req *GenerateRequest) *PipelineError {
	target := req.NumQuestions
	update := func(progress, step int, format string, args ...interface{}) {
		s.registry.Update(jobID, domain.JobStatusInProgress, progress, step, fmt.Sprintf(format, args...))
	}

	// Phase 1: split, sample, seed the working set from the primary chunk
	update(0, domain.StepSplit, "Starting question generation")

	chunks := SplitText(req.RawText)
	if len(chunks) == 0 {
		chunks = []string{req.RawText}
	}
	update(5, domain.StepSplit, "Split text into %d chunks", len(chunks))

	indices := SampleChunks(len(chunks), target)
	update(20, domain.StepSplit, "Sampled chunks %v for coverage, generating from primary chunk", indices)

	accepted, err := s.generator.GenerateQuestions(ctx, chunks[indices[0]], req.QuestionLanguage, target, 1)
	if err != nil {
		// The fill loop can still recover; a dead upstream will hit the
		// stall bound there.
		s.registry.AppendLog(jobID, fmt.Sprintf("Error generating questions: %v", err))
		accepted = nil
	}
	if len(accepted) > target {
		accepted = accepted[:target]
	}

	acceptedTexts := make([]string, 0, target)
	for _, q := range accepted {
		acceptedTexts = append(acceptedTexts, q.Text)
	}
	update(40, domain.StepSplit, "Generated %d questions from primary chunk", len(accepted))

	// Phase 2: batch fill until exactly target questions are accepted
	accepted, perr := s.fill(ctx, jobID, req, chunks, accepted, acceptedTexts)
	if perr != nil {
		return perr
	}

	// Phase 3: translate explanations when the languages differ
	if !strings.EqualFold(req.ExplanationLanguage, req.QuestionLanguage) {
		update(80, domain.StepTranslate, "Starting translation for %d explanations", len(accepted))
		s.translateExplanations(ctx, jobID, req, accepted)
		update(95, domain.StepTranslate, "Finished translating explanations")
	}

	// Phase 4: finalize
	AlignAnswers(accepted)
	update(96, domain.StepFinalize, "Aligned correct answers with explanations")

	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	BalanceAnswers(accepted, rand.New(rand.NewSource(seed)))

	for i := range accepted {
		accepted[i].ID = i + 1
	}

	topics := collectTopics(accepted)
	s.registry.SetQuestions(jobID, accepted, topics)

	if req.OutputFormat == "excel" && s.exporter != nil {
		update(98, domain.StepFinalize, "Saving to Excel")
		key, err := s.exporter.Export(ctx, jobID, accepted)
		if err != nil {
			// Non-fatal: the job still completes with in-memory results
			s.registry.AppendLog(jobID, fmt.Sprintf("Failed to create Excel file: %v", err))
			logger.CtxError(ctx, "Excel export failed: job_id=%s, error=%v", jobID, err)
		} else {
			s.registry.SetExcelFile(jobID, key)
			s.registry.AppendLog(jobID, fmt.Sprintf("Saved export to %s", key))
		}
	}

	s.archive(ctx, jobID, req, accepted, topics)

	s.registry.AppendLog(jobID, fmt.Sprintf("Generated %d questions", len(accepted)))
	s.registry.AppendLog(jobID, fmt.Sprintf("Found %d unique topics", len(topics)))
	s.registry.Update(jobID, domain.JobStatusCompleted, 100, domain.StepFinalize, "Question generation complete")
	return nil
}

// fill runs the phase 2 loop: request batches round-robin across chunks,
// gate them through the deduplicator, and accept until the count matches
// the target exactly. The loop aborts after maxStalls consecutive
// non-productive iterations instead of spinning forever against an
// uncooperative generation service.
func (s *GenerationService) fill(
	ctx context.Context,
	jobID string,
	req *GenerateRequest,
	chunks []string,
	accepted []domain.Question,
	acceptedTexts []string,
) ([]domain.Question, *PipelineError) {
	target := req.NumQuestions
	stalls := 0
	nextChunk := 0

	for len(accepted) < target {
		if stalls >= s.maxStalls {
			if len(accepted) == 0 {
				return nil, pipelineErrorf(FailureGeneration,
					"Error in question generation: no usable questions after %d attempts", stalls)
			}
			return nil, pipelineErrorf(FailureConvergence,
				"Error in question generation: stuck at %d/%d questions after %d non-productive batches",
				len(accepted), target, stalls)
		}

		remaining := target - len(accepted)
		batchSize := remaining
		if batchSize > s.batchSize {
			batchSize = s.batchSize
		}

		// Round-robin over all chunks to spread batches across the document
		chunk := chunks[nextChunk%len(chunks)]
		nextChunk++

		s.registry.Update(jobID, domain.JobStatusInProgress, fillProgress(len(accepted), target),
			domain.StepBatchFill, fmt.Sprintf("Generating batch of %d questions", batchSize))

		batch, err := s.generator.GenerateQuestions(ctx, chunk, req.QuestionLanguage, batchSize, len(accepted)+1)
		if err != nil {
			s.registry.AppendLog(jobID, fmt.Sprintf("Error generating questions: %v", err))
			stalls++
			continue
		}

		var unique []domain.Question
		for _, q := range batch {
			if IsDuplicate(q.Text, acceptedTexts) {
				continue
			}
			unique = append(unique, q)
		}

		// A thin batch is treated as non-productive: retry against a
		// different chunk rather than accepting a trickle.
		if len(unique) == 0 || len(unique)*2 < batchSize || len(batch) < batchSize {
			s.registry.AppendLog(jobID, fmt.Sprintf(
				"Batch shortfall (%d raw, %d unique of %d requested), trying different content",
				len(batch), len(unique), batchSize))
			stalls++
			continue
		}

		for _, q := range unique {
			acceptedTexts = append(acceptedTexts, q.Text)
		}
		accepted = append(accepted, unique...)
		stalls = 0

		s.registry.Update(jobID, domain.JobStatusInProgress, fillProgress(len(accepted), target),
			domain.StepBatchFill, fmt.Sprintf("Generated %d unique questions, total: %d", len(unique), len(accepted)))

		if len(accepted) > target {
			accepted = accepted[:target]
			s.registry.AppendLog(jobID, fmt.Sprintf("Adjusted to exact number: %d questions", target))
		}
	}

	return accepted, nil
}

// fillProgress maps fill completion onto 40-75 so the later translation
// and finalize milestones never move progress backwards.
func fillProgress(current, target int) int {
	progress := 40 + current*35/target
	if progress > 75 {
		progress = 75
	}
	return progress
}

// translateExplanations fans translation requests out over a bounded
// worker pool and writes results back by index, preserving question
// order. Individual failures keep the original explanation.
func (s *GenerationService) translateExplanations(ctx context.Context, jobID string, req *GenerateRequest, questions []domain.Question) {
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				translated, err := s.translator.Translate(ctx, questions[i].Explanation,
					req.QuestionLanguage, req.ExplanationLanguage)
				if err != nil {
					s.registry.AppendLog(jobID, fmt.Sprintf(
						"Translation failed for question %d, keeping original explanation", questions[i].ID))
					continue
				}
				questions[i].Explanation = translated
			}
		}()
	}

	for i := range questions {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// archive persists the completed exam for retrieval after restarts.
// Failures are logged only; the in-memory job result stands on its own.
func (s *GenerationService) archive(ctx context.Context, jobID string, req *GenerateRequest, questions []domain.Question, topics []string) {
	if s.exams == nil {
		return
	}

	job, err := s.registry.Snapshot(jobID)
	if err != nil {
		return
	}

	exam := &domain.Exam{
		ID:                  uuid.New().String(),
		JobID:               jobID,
		QuestionLanguage:    req.QuestionLanguage,
		ExplanationLanguage: req.ExplanationLanguage,
		QuestionCount:       len(questions),
		Questions:           domain.QuestionList(questions),
		Topics:              domain.StringArray(topics),
		ExcelFile:           job.ExcelFile,
		CreatedAt:           time.Now(),
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		logger.CtxError(ctx, "Failed to archive exam: job_id=%s, error=%v", jobID, err)
	}
}

// collectTopics returns the distinct topic labels in first-seen order.
func collectTopics(questions []domain.Question) []string {
	seen := make(map[string]struct{}, len(questions))
	topics := make([]string, 0, len(questions))
	for _, q := range questions {
		if q.Topic == "" {
			continue
		}
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		topics = append(topics, q.Topic)
	}
	return topics
}
