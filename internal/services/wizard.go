package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
	"github.com/chasinalts/comet-scanner-wizard/internal/sse"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
	"github.com/chasinalts/comet-scanner-wizard/internal/wizard"
)

// SessionState is the wire shape of a wizard session after any operation.
// Output always reflects every recorded answer, it is recomputed inside the
// session on each answer event.
type SessionState struct {
	Mode            wizard.Mode      `json:"mode"`
	Output          string           `json:"output"`
	Index           int              `json:"index"`
	Total           int              `json:"total"`
	Current         *wizard.Question `json:"current,omitempty"`
	HasFullTemplate bool             `json:"hasFullTemplate"`
	HasQuestions    bool             `json:"hasQuestions"`
	AtLastQuestion  bool             `json:"atLastQuestion"`
}

type WizardService interface {
	StartSession(ctx context.Context, userID uuid.UUID) (*SessionState, error)
	ChooseFullTemplate(ctx context.Context, userID uuid.UUID) (*SessionState, error)
	StartBuilder(ctx context.Context, userID uuid.UUID) (*SessionState, error)
	AnswerString(ctx context.Context, userID uuid.UUID, questionID, value string) (*SessionState, error)
	AnswerBoolean(ctx context.Context, userID uuid.UUID, questionID string, value bool) (*SessionState, error)
	AnswerChoice(ctx context.Context, userID uuid.UUID, questionID, optionText string) (*SessionState, error)
	Skip(ctx context.Context, userID uuid.UUID) (*SessionState, error)
	Next(ctx context.Context, userID uuid.UUID) (*SessionState, error)
	Previous(ctx context.Context, userID uuid.UUID) (*SessionState, error)
	SaveProgress(ctx context.Context, userID uuid.UUID, name string) (*types.SavedTemplate, error)
	Finish(ctx context.Context, userID uuid.UUID, name string) (*types.SavedTemplate, *SessionState, error)
	LoadSnapshot(ctx context.Context, userID uuid.UUID, name string) (*SessionState, error)
	ListTemplates(ctx context.Context, userID uuid.UUID) ([]*types.SavedTemplate, error)
	DeleteTemplate(ctx context.Context, userID uuid.UUID, name string) error
}

type wizardService struct {
	log             *logger.Logger
	questionService QuestionService
	contentService  ContentService
	templateService TemplateService
	hub             *sse.SSEHub
	bus             SSEBus

	mu       sync.Mutex
	sessions map[uuid.UUID]*wizard.Session
}

func NewWizardService(
	log *logger.Logger,
	questionService QuestionService,
	contentService ContentService,
	templateService TemplateService,
	hub *sse.SSEHub,
	bus SSEBus,
) WizardService {
	serviceLog := log.With("service", "WizardService")
	return &wizardService{
		log:             serviceLog,
		questionService: questionService,
		contentService:  contentService,
		templateService: templateService,
		hub:             hub,
		bus:             bus,
		sessions:        make(map[uuid.UUID]*wizard.Session),
	}
}

// StartSession builds a fresh session from the current question list and
// template content. Any in-flight session for the user is discarded.
func (ws *wizardService) StartSession(ctx context.Context, userID uuid.UUID) (*SessionState, error) {
	questions, err := ws.questionService.GetWizardQuestions(ctx)
	if err != nil {
		return nil, err
	}
	baseCode, err := ws.contentService.BaseTemplate(ctx)
	if err != nil {
		return nil, err
	}
	fullCode, err := ws.contentService.FullTemplate(ctx)
	if err != nil {
		return nil, err
	}

	session := wizard.NewSession(questions, baseCode, fullCode)

	ws.mu.Lock()
	ws.sessions[userID] = session
	ws.mu.Unlock()

	ws.log.Info("Started wizard session", "userID", userID, "questions", len(questions))
	return snapshotState(session), nil
}

func (ws *wizardService) session(userID uuid.UUID) (*wizard.Session, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	session, ok := ws.sessions[userID]
	if !ok {
		return nil, fmt.Errorf("%w: no active wizard session", pkgerrors.ErrNotFound)
	}
	return session, nil
}

func (ws *wizardService) ChooseFullTemplate(ctx context.Context, userID uuid.UUID) (*SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err := session.ChooseFullTemplate(); err != nil {
		return nil, err
	}
	return snapshotState(session), nil
}

func (ws *wizardService) StartBuilder(ctx context.Context, userID uuid.UUID) (*SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err := session.StartBuilder(); err != nil {
		return nil, err
	}
	return snapshotState(session), nil
}

func (ws *wizardService) AnswerString(ctx context.Context, userID uuid.UUID, questionID, value string) (*SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err := session.AnswerString(questionID, value); err != nil {
		return nil, err
	}
	publishSSE(ctx, ws.log, ws.hub, ws.bus, sse.UserChannel(userID), sse.SSEEventWizardCodeUpdated, questionID)
	return snapshotState(session), nil
}

func (ws *wizardService) AnswerBoolean(ctx context.Context, userID uuid.UUID, questionID string, value bool) (*SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err := session.AnswerBoolean(questionID, value); err != nil {
		return nil, err
	}
	publishSSE(ctx, ws.log, ws.hub, ws.bus, sse.UserChannel(userID), sse.SSEEventWizardCodeUpdated, questionID)
	return snapshotState(session), nil
}

func (ws *wizardService) AnswerChoice(ctx context.Context, userID uuid.UUID, questionID, optionText string) (*SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err := session.AnswerChoice(questionID, optionText); err != nil {
		return nil, err
	}
	publishSSE(ctx, ws.log, ws.hub, ws.bus, sse.UserChannel(userID), sse.SSEEventWizardCodeUpdated, questionID)
	return snapshotState(session), nil
}

func (ws *wizardService) Skip(ctx context.Context, userID uuid.UUID) (*SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	advanced, err := session.SkipCurrent()
	if err != nil {
		return nil, err
	}
	state := snapshotState(session)
	state.AtLastQuestion = !advanced
	publishSSE(ctx, ws.log, ws.hub, ws.bus, sse.UserChannel(userID), sse.SSEEventWizardCodeUpdated, nil)
	return state, nil
}

func (ws *wizardService) Next(ctx context.Context, userID uuid.UUID) (*SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	session.Next()
	return snapshotState(session), nil
}

func (ws *wizardService) Previous(ctx context.Context, userID uuid.UUID) (*SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	session.Previous()
	return snapshotState(session), nil
}

// SaveProgress persists the session mid-flow so it can be resumed later.
func (ws *wizardService) SaveProgress(ctx context.Context, userID uuid.UUID, name string) (*types.SavedTemplate, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	answers := session.Answers()
	output := session.Output()
	ws.mu.Unlock()

	snapshot, err := ws.templateService.SaveSnapshot(ctx, userID, name, answers, output, false)
	if err != nil {
		return nil, err
	}
	publishSSE(ctx, ws.log, ws.hub, ws.bus, sse.UserChannel(userID), sse.SSEEventTemplateSaved, snapshot.Name)
	return snapshot, nil
}

// Finish moves the session to preview and persists the result as a complete
// snapshot.
func (ws *wizardService) Finish(ctx context.Context, userID uuid.UUID, name string) (*types.SavedTemplate, *SessionState, error) {
	session, err := ws.session(userID)
	if err != nil {
		return nil, nil, err
	}
	ws.mu.Lock()
	session.Finish()
	answers := session.Answers()
	output := session.Output()
	state := snapshotState(session)
	ws.mu.Unlock()

	snapshot, err := ws.templateService.SaveSnapshot(ctx, userID, name, answers, output, true)
	if err != nil {
		return nil, nil, err
	}
	publishSSE(ctx, ws.log, ws.hub, ws.bus, sse.UserChannel(userID), sse.SSEEventTemplateSaved, snapshot.Name)
	return snapshot, state, nil
}

// LoadSnapshot restores a saved snapshot into the user's session, creating a
// session first when none is active.
func (ws *wizardService) LoadSnapshot(ctx context.Context, userID uuid.UUID, name string) (*SessionState, error) {
	snapshot, err := ws.templateService.GetSnapshot(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	session, ok := ws.sessions[userID]
	ws.mu.Unlock()
	if !ok {
		if _, err := ws.StartSession(ctx, userID); err != nil {
			return nil, err
		}
		session, err = ws.session(userID)
		if err != nil {
			return nil, err
		}
	}

	answers := ws.templateService.DecodeAnswers(snapshot.Answers)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	session.Restore(answers, snapshot.Code, snapshot.IsComplete)
	return snapshotState(session), nil
}

func (ws *wizardService) ListTemplates(ctx context.Context, userID uuid.UUID) ([]*types.SavedTemplate, error) {
	return ws.templateService.ListSnapshots(ctx, userID)
}

func (ws *wizardService) DeleteTemplate(ctx context.Context, userID uuid.UUID, name string) error {
	if err := ws.templateService.DeleteSnapshot(ctx, userID, name); err != nil {
		return err
	}
	publishSSE(ctx, ws.log, ws.hub, ws.bus, sse.UserChannel(userID), sse.SSEEventTemplateDeleted, name)
	return nil
}

func snapshotState(session *wizard.Session) *SessionState {
	index, total := session.Position()
	state := &SessionState{
		Mode:            session.Mode(),
		Output:          session.Output(),
		Index:           index,
		Total:           total,
		HasFullTemplate: session.HasFullTemplate(),
		HasQuestions:    session.HasQuestions(),
		AtLastQuestion:  total > 0 && index == total-1,
	}
	if session.Mode() == wizard.ModeActive {
		if current, ok := session.Current(); ok {
			state.Current = &current
		}
	}
	return state
}
