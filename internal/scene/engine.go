// Package scene runs multi-step dialogs. Each user has at most one active
// scene; its state lives in a Session and is discarded whenever the scene is
// left or replaced.
package scene

import (
	"context"
	"fmt"

	"github.com/open-builders/school-bot/internal/chat"
	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/common/logger"
)

// Outcome tells the engine what to do after a handler returns.
type Outcome int

const (
	// Await keeps the scene active and waits for the next event.
	Await Outcome = iota
	// Leave clears the scene and its state.
	Leave
)

// Handler handles one event inside a scene.
type Handler func(ctx context.Context, s *Scope) (Outcome, error)

// Scene is a named dialog. Enter runs once per Engine.Enter. Events are
// routed by kind; anything without a matching handler goes to Fallback.
type Scene struct {
	Name      string
	Enter     Handler
	OnText    Handler
	OnContact Handler
	Actions   map[chat.ActionKind]Handler
	Fallback  Handler
}

func (sc *Scene) handlerFor(ev *chat.Event) Handler {
	var h Handler
	switch ev.Kind {
	case chat.KindText, chat.KindCommand:
		h = sc.OnText
	case chat.KindContact:
		h = sc.OnContact
	case chat.KindCallback:
		h = sc.Actions[ev.Action.Kind]
	}
	if h == nil {
		h = sc.Fallback
	}
	return h
}

// Scope is what a handler sees: the event, the scene state and the step.
type Scope struct {
	Event *chat.Event
	State State

	session *Session
	after   []func(ctx context.Context) error
}

// UserID is the owner of the session.
func (s *Scope) UserID() int64 {
	return s.Event.UserID
}

// Step is the current step ordinal of the scene.
func (s *Scope) Step() int {
	return s.session.Step
}

// Goto moves the scene to another step.
func (s *Scope) Goto(step int) {
	s.session.Step = step
}

// MarkJustRegistered sets the one-shot post-registration flag. It outlives
// the scene.
func (s *Scope) MarkJustRegistered() {
	s.session.JustRegistered = true
}

// Then registers fn to run after the scene was left and the cleared session
// saved. Hooks are dropped when the handler returns Await.
func (s *Scope) Then(fn func(ctx context.Context) error) {
	s.after = append(s.after, fn)
}

// Engine owns the scene registry and the session store.
type Engine struct {
	scenes map[string]*Scene
	store  Store
}

func NewEngine(store Store, scenes ...*Scene) *Engine {
	e := &Engine{scenes: make(map[string]*Scene), store: store}
	for _, sc := range scenes {
		e.Register(sc)
	}
	return e
}

// Register adds or replaces a scene.
func (e *Engine) Register(sc *Scene) {
	e.scenes[sc.Name] = sc
}

// Active returns the name of the user's active scene, or "".
func (e *Engine) Active(ctx context.Context, userID int64) (string, error) {
	sess, err := e.store.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	return sess.Scene, nil
}

// Enter replaces whatever scene the event's sender has with name, seeded with
// initial, and runs its entry handler.
func (e *Engine) Enter(ctx context.Context, ev *chat.Event, name string, initial State) error {
	sc, ok := e.scenes[name]
	if !ok {
		return fmt.Errorf("scene %q is not registered", name)
	}

	sess, err := e.store.Load(ctx, ev.UserID)
	if err != nil {
		return err
	}
	sess.Scene = name
	sess.Step = 0
	sess.State = initial.clone()

	logger.Ctx(ctx).Debug().Str("scene", name).Msg("enter scene")

	if sc.Enter == nil {
		return e.store.Save(ctx, ev.UserID, sess)
	}
	return e.run(ctx, ev, sess, sc.Enter)
}

// Dispatch hands ev to the active scene. It reports false when no scene is
// active so the caller can route the event elsewhere.
func (e *Engine) Dispatch(ctx context.Context, ev *chat.Event) (bool, error) {
	sess, err := e.store.Load(ctx, ev.UserID)
	if err != nil {
		return false, err
	}
	if !sess.Active() {
		return false, nil
	}

	sc, ok := e.scenes[sess.Scene]
	if !ok {
		logger.Ctx(ctx).Warn().Str("scene", sess.Scene).Msg("unknown scene in session, clearing")
		sess.clearFlow()
		return false, e.store.Save(ctx, ev.UserID, sess)
	}

	h := sc.handlerFor(ev)
	if h == nil {
		return true, nil
	}
	return true, e.run(ctx, ev, sess, h)
}

// Leave clears the user's active scene, if any.
func (e *Engine) Leave(ctx context.Context, userID int64) error {
	sess, err := e.store.Load(ctx, userID)
	if err != nil {
		return err
	}
	if !sess.Active() {
		return nil
	}
	sess.clearFlow()
	return e.store.Save(ctx, userID, sess)
}

// ConsumeJustRegistered returns the post-registration flag and clears it.
func (e *Engine) ConsumeJustRegistered(ctx context.Context, userID int64) (bool, error) {
	sess, err := e.store.Load(ctx, userID)
	if err != nil {
		return false, err
	}
	if !sess.JustRegistered {
		return false, nil
	}
	sess.JustRegistered = false
	return true, e.store.Save(ctx, userID, sess)
}

// run invokes h and applies its outcome. A failing handler leaves the scene
// the same way Leave does, so the user is never stuck in a broken dialog.
func (e *Engine) run(ctx context.Context, ev *chat.Event, sess *Session, h Handler) error {
	if sess.State == nil {
		sess.State = State{}
	}
	scope := &Scope{Event: ev, State: sess.State, session: sess}

	out, err := callHandler(ctx, h, scope)
	leaving := err != nil || out == Leave
	if leaving {
		sess.clearFlow()
	}

	if saveErr := e.store.Save(ctx, ev.UserID, sess); saveErr != nil && err == nil {
		err = saveErr
	}
	if err != nil || !leaving {
		return err
	}

	for _, fn := range scope.after {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// callHandler converts a panic into an error so the scene is still cleared.
func callHandler(ctx context.Context, h Handler, s *Scope) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = Leave, apperrors.New(apperrors.ErrCodeInternal, fmt.Sprintf("scene handler panic: %v", r))
		}
	}()
	return h(ctx, s)
}
