package app

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/session"

	"signupweb/internal/constants"
	"signupweb/internal/registration"
	"signupweb/internal/repo"
	"signupweb/internal/signup"
	"signupweb/internal/view"
	loginviews "signupweb/views/login"
)

type SignUpHandlers struct {
	renderer     *view.Renderer
	sessionStore *session.Store
	registrar    signup.Registrar
	guard        signup.Guard
	timeout      time.Duration
	repo         repo.Repository
}

func (h *SignUpHandlers) SignUpForm(c *fiber.Ctx) error {
	return h.renderer.RenderComponent(c, fiber.StatusOK, loginviews.SignUp(loginviews.SignUpProps{}))
}

func (h *SignUpHandlers) SignIn(c *fiber.Ctx) error {
	notice := h.renderer.TakeFlash(c)
	return h.renderer.RenderComponent(c, fiber.StatusOK, loginviews.SignIn(loginviews.SignInProps{Notice: notice}))
}

func (h *SignUpHandlers) SubmitSignUp(c *fiber.Ctx) error {
	var draft signup.Draft
	if err := c.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fiberlog.Debug("draft:", draft.Redacted())

	sess, err := h.sessionStore.Get(c)
	if err != nil {
		return err
	}

	requestID := registration.NewRequestID()
	ctx := registration.WithRequestID(c.UserContext(), requestID)
	ctx = registration.WithClientIP(ctx, c.IP())

	notice := &pendingNotice{}
	redirect := &pendingRedirect{}
	workflow := signup.Workflow{
		Registrar: h.registrar,
		Notifier:  notice,
		Navigator: redirect,
		Guard:     h.guard,
		Timeout:   h.timeout,
	}

	out := workflow.Submit(ctx, sess.ID(), draft)
	if out.Result != nil {
		h.recordAttempt(ctx, requestID, draft.Email, out.Result)
	}

	if notice.message != "" {
		sess.Set(constants.FlashSessionKey, notice.message)
		if err := sess.Save(); err != nil {
			return err
		}
	}

	if redirect.path != "" {
		return navigate(c, redirect.path)
	}

	status := fiber.StatusUnprocessableEntity
	props := loginviews.SignUpProps{Form: out.Form}
	if errors.Is(out.Err, signup.ErrAlreadySubmitting) {
		status = fiber.StatusConflict
		// This response does not follow the outstanding request, so the
		// form it renders must stay submittable.
		props.Form.State = signup.Idle
	}

	// htmx only swaps 2xx responses
	if view.IsHtmx(c) {
		return h.renderer.RenderComponent(c, fiber.StatusOK, loginviews.SignUpForm(props))
	}
	return h.renderer.RenderComponent(c, status, loginviews.SignUp(props))
}

func (h *SignUpHandlers) recordAttempt(ctx context.Context, requestID, email string, result signup.Result) {
	if _, err := h.repo.RecordAttempt(ctx, requestID, email, result.Kind()); err != nil {
		fiberlog.Error("record sign-up attempt: ", err)
	}
}

func navigate(c *fiber.Ctx, path string) error {
	if view.IsHtmx(c) {
		c.Set("HX-Location", path)
		return c.SendStatus(fiber.StatusOK)
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

// pendingNotice and pendingRedirect collect what the workflow asked for, so the
// handler can apply it to the response once the workflow has returned.
type pendingNotice struct {
	message string
}

func (n *pendingNotice) Notify(message string) {
	n.message = message
}

type pendingRedirect struct {
	path string
}

func (r *pendingRedirect) Navigate(path string) {
	r.path = path
}
