package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/skill"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/resumetext"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	mailTimeout = 30 * time.Second
	// maxRespondAttempts bounds retries when responses to the same
	// application race.
	maxRespondAttempts = 3
)

// MailSender delivers a plain-text email.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TextExtractor returns the plain text of a stored resume.
type TextExtractor func(path string) (string, error)

// Upload is a file received with a request.
type Upload struct {
	Filename string
	Content  io.Reader
}

type SubmitInput struct {
	JobID  uuid.UUID
	UserID uuid.UUID
	// Resume, ResumePath and CoverLetter override what is stored on the
	// profile. Resume wins over ResumePath.
	Resume         *Upload
	ResumePath     string
	CoverLetter    string
	ResumeAnalysis string
}

type RespondInput struct {
	ApplicationID uuid.UUID
	RecruiterID   uuid.UUID
	Status        string
	Message       string
}

// ApplicationView is an application together with the posting it targets.
type ApplicationView struct {
	application.Applicant
	Job job.Posting `json:"job"`
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, in SubmitInput) (application.Applicant, error)
	Respond(ctx context.Context, in RespondInput) (application.Applicant, error)
	ListApplicants(ctx context.Context, recruiterID, jobID uuid.UUID) ([]application.Applicant, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ApplicationView, error)
}

type Applications struct {
	jobs    repository.JobRepository
	apps    repository.ApplicationRepository
	users   repository.UserRepository
	resumes ResumeStore
	vocab   *skill.Vocabulary
	extract TextExtractor
	mail    MailSender
	events  EventEmitter
	logger  *zap.Logger
	now     func() time.Time

	pending sync.WaitGroup
}

func NewApplicationUsecase(
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	users repository.UserRepository,
	resumes ResumeStore,
	vocab *skill.Vocabulary,
	extract TextExtractor,
	mail MailSender,
	events EventEmitter,
	log *zap.Logger,
) *Applications {
	if vocab == nil {
		vocab = skill.DefaultVocabulary()
	}
	return &Applications{
		jobs:    jobs,
		apps:    apps,
		users:   users,
		resumes: resumes,
		vocab:   vocab,
		extract: extract,
		mail:    mail,
		events:  emitterOrNop(events),
		logger:  logger.OrNop(log),
		now:     time.Now,
	}
}

// Submit checks, in order: the job is visible and open, the user has not
// applied yet, a resume and a cover letter are available. The first failing
// check decides the error.
func (u *Applications) Submit(ctx context.Context, in SubmitInput) (_ application.Applicant, err error) {
	p, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Applicant{}, ErrJobNotFound
		}
		return application.Applicant{}, ErrInternal
	}
	if !p.IsApproved() {
		return application.Applicant{}, ErrJobNotFound
	}
	if !p.AcceptsApplications() {
		return application.Applicant{}, ErrJobClosed
	}

	exists, err := u.apps.Exists(ctx, in.JobID, in.UserID)
	if err != nil {
		return application.Applicant{}, ErrInternal
	}
	if exists {
		return application.Applicant{}, ErrAlreadyApplied
	}

	profile, err := u.users.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return application.Applicant{}, ErrUserNotFound
		}
		return application.Applicant{}, ErrInternal
	}

	resume := firstNonEmpty(in.ResumePath, profile.ResumePath)
	if in.Resume == nil && resume == "" {
		return application.Applicant{}, ErrResumeRequired
	}
	cover := firstNonEmpty(in.CoverLetter, profile.CoverLetter)
	if cover == "" {
		return application.Applicant{}, ErrCoverLetterRequired
	}
	if in.Resume != nil {
		if resume, err = u.storeResume(in.UserID, *in.Resume); err != nil {
			return application.Applicant{}, err
		}
		uploaded := resume
		defer func() {
			if err != nil {
				u.discardResume(uploaded)
			}
		}()
	}

	gap := u.gap(p, u.analysisText(in.ResumeAnalysis, profile.ResumeAnalysis, resume))

	created, err := u.apps.Create(ctx, application.Applicant{
		ID:            uuid.New(),
		JobID:         p.ID,
		UserID:        in.UserID,
		ResumePath:    resume,
		CoverLetter:   cover,
		Status:        application.StatusPending,
		MatchedSkills: gap.Matched,
		MissingSkills: gap.Missing,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyApplied) {
			return application.Applicant{}, ErrAlreadyApplied
		}
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Applicant{}, ErrJobNotFound
		}
		return application.Applicant{}, ErrInternal
	}

	u.logger.Info("application submitted",
		zap.String("application_id", created.ID.String()),
		zap.String("job_id", p.ID.String()),
		zap.Int("matched", len(gap.Matched)),
		zap.Int("missing", len(gap.Missing)),
	)
	return created, nil
}

func (u *Applications) discardResume(path string) {
	if err := u.resumes.Remove(path); err != nil {
		u.logger.Warn("orphaned resume not removed", zap.String("path", path), zap.Error(err))
	}
}

func (u *Applications) storeResume(userID uuid.UUID, up Upload) (string, error) {
	if !resumetext.Allowed(up.Filename) {
		return "", ErrResumeFormat
	}
	if u.resumes == nil {
		return "", ErrInternal
	}
	path, err := u.resumes.Save(userID, up.Filename, up.Content)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return "", ErrResumeTooLarge
		}
		u.logger.Error("application resume upload failed", zap.String("user_id", userID.String()), zap.Error(err))
		return "", ErrInternal
	}
	return path, nil
}

// analysisText prefers the submitted analysis, then the stored one, then the
// resume's own text.
func (u *Applications) analysisText(submitted, stored, resumePath string) string {
	if s := strings.TrimSpace(submitted); s != "" {
		return s
	}
	if s := strings.TrimSpace(stored); s != "" {
		return s
	}
	if u.extract == nil {
		return ""
	}
	text, err := u.extract(resumePath)
	if err != nil {
		u.logger.Warn("resume text extraction failed", zap.String("path", resumePath), zap.Error(err))
		return ""
	}
	return text
}

func (u *Applications) gap(p job.Posting, analysis string) matching.Gap {
	return skillGap(u.vocab, p, analysis)
}

func skillGap(vocab *skill.Vocabulary, p job.Posting, analysis string) matching.Gap {
	jobSkills := vocab.CanonicalizeAll(skill.CompactTokens(skill.ExtractJobSkills(p.Skills)))
	return matching.ComputeGap(jobSkills, vocab.ExtractSet(analysis))
}

func (u *Applications) Respond(ctx context.Context, in RespondInput) (application.Applicant, error) {
	a, err := u.apps.GetByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Applicant{}, ErrApplicationNotFound
		}
		return application.Applicant{}, ErrInternal
	}

	p, err := u.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Applicant{}, ErrJobNotFound
		}
		return application.Applicant{}, ErrInternal
	}
	if p.RecruiterID != in.RecruiterID {
		return application.Applicant{}, ErrNotJobOwner
	}

	status, err := application.ParseResponseStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if err != nil {
		return application.Applicant{}, ErrInvalidInput
	}

	message := strings.TrimSpace(in.Message)
	var updated application.Applicant
	for attempt := 0; ; attempt++ {
		if !application.IsTransitionAllowed(a.Status, status) {
			return application.Applicant{}, ErrInvalidTransition
		}
		updated, err = u.apps.Respond(ctx, a.ID, a.Status, status, message, u.now().UTC())
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, repository.ErrApplicationNotFound):
			return application.Applicant{}, ErrApplicationNotFound
		case errors.Is(err, repository.ErrStatusChanged) && attempt < maxRespondAttempts-1:
			// Another response landed first; re-check against what it wrote.
			if a, err = u.apps.GetByID(ctx, a.ID); err != nil {
				return application.Applicant{}, ErrInternal
			}
		case errors.Is(err, repository.ErrStatusChanged):
			return application.Applicant{}, ErrInvalidTransition
		default:
			u.logger.Error("respond to application failed", zap.String("application_id", a.ID.String()), zap.Error(err))
			return application.Applicant{}, ErrInternal
		}
	}

	u.notifyApplicant(updated, p)
	return updated, nil
}

func (u *Applications) notifyApplicant(a application.Applicant, p job.Posting) {
	u.events.Emit(a.UserID, notification.EventApplicationResponded, map[string]any{
		"application_id": a.ID,
		"job_id":         p.ID,
		"title":          p.Title,
		"company_name":   p.CompanyName,
		"status":         a.Status,
		"response":       a.Response,
	})

	if u.mail == nil {
		return
	}

	u.pending.Add(1)
	go func() {
		defer u.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		applicant, err := u.users.GetByID(ctx, a.UserID)
		if err != nil {
			u.logger.Warn("response mail skipped, applicant lookup failed",
				zap.String("application_id", a.ID.String()), zap.Error(err))
			return
		}

		subject := fmt.Sprintf("Update on your application: %s", p.Title)
		body := responseMailBody(applicant.FullName, p, a)
		if err := u.mail.Send(ctx, applicant.Email, subject, body); err != nil {
			u.logger.Warn("response mail failed",
				zap.String("application_id", a.ID.String()), zap.Error(err))
		}
	}()
}

// Wait blocks until queued response mails have been handed off.
func (u *Applications) Wait() {
	u.pending.Wait()
}

func responseMailBody(name string, p job.Posting, a application.Applicant) string {
	if name == "" {
		name = "there"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "%s has updated your application for %s.\n", p.CompanyName, p.Title)
	fmt.Fprintf(&b, "Status: %s\n", a.Status)
	if a.Response != "" {
		fmt.Fprintf(&b, "\n%s\n", a.Response)
	}
	return b.String()
}

func (u *Applications) ListApplicants(ctx context.Context, recruiterID, jobID uuid.UUID) ([]application.Applicant, error) {
	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if p.RecruiterID != recruiterID {
		return nil, ErrNotJobOwner
	}

	items, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Applications) ListMine(ctx context.Context, userID uuid.UUID) ([]ApplicationView, error) {
	items, err := u.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]ApplicationView, 0, len(items))
	for _, a := range items {
		p, err := u.jobs.GetByID(ctx, a.JobID)
		if err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				continue
			}
			return nil, ErrInternal
		}
		out = append(out, ApplicationView{Applicant: a, Job: p})
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
