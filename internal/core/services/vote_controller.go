package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

const (
	msgVoteThanks    = "✨ Obrigado pelo seu feedback! ✨"
	msgVoteRejected  = "❌ Erro ao registrar. Tente novamente."
	msgVoteConnError = "❌ Erro de conexão. Tente novamente."
)

// VoteController turns triggers and shortcut keys into at most one vote per
// accepted gesture. All methods must run on the UI goroutine.
type VoteController struct {
	api        ports.SurveyAPI
	view       ports.VoteView
	dispatcher ports.Dispatcher
	scheduler  ports.Scheduler
	log        logrus.FieldLogger

	blocked   bool
	hideTimer ports.Timer
}

func NewVoteController(api ports.SurveyAPI, view ports.VoteView, dispatcher ports.Dispatcher, scheduler ports.Scheduler, log logrus.FieldLogger) *VoteController {
	return &VoteController{
		api:        api,
		view:       view,
		dispatcher: dispatcher,
		scheduler:  scheduler,
		log:        log,
	}
}

func (c *VoteController) Blocked() bool {
	return c.blocked
}

// KeyPressed handles the 1/2/3 shortcuts. Other keys are ignored.
func (c *VoteController) KeyPressed(key rune) {
	if c.blocked {
		return
	}
	category, ok := domain.CategoryForKey(key)
	if !ok {
		return
	}
	c.Trigger(category)
}

// Trigger casts a vote for category unless a previous vote is still in
// flight or cooling down.
func (c *VoteController) Trigger(category domain.Category) {
	if c.blocked {
		return
	}
	if !category.Valid() {
		c.log.WithField("category", string(category)).Warn("ignoring trigger with unknown category")
		return
	}

	c.block()

	c.dispatcher.Go(func() {
		err := c.api.CastVote(context.Background(), category)
		c.dispatcher.Post(func() {
			c.voteFinished(category, err)
		})
	})
}

func (c *VoteController) voteFinished(category domain.Category, err error) {
	if err == nil {
		c.log.WithField("category", string(category)).Info("vote registered")
		c.showMessage(ports.MessageSuccess, msgVoteThanks)
		c.scheduler.AfterFunc(domain.VoteCooldown, c.unblock)
		return
	}

	if errors.Is(err, domain.ErrRequestRejected) {
		c.log.WithError(err).Warn("vote rejected")
		c.showMessage(ports.MessageError, msgVoteRejected)
	} else {
		c.log.WithError(err).Error("vote failed")
		c.showMessage(ports.MessageError, msgVoteConnError)
	}
	c.unblock()
}

func (c *VoteController) showMessage(kind ports.MessageKind, text string) {
	c.view.ShowMessage(kind, text)
	if c.hideTimer != nil {
		c.hideTimer.Stop()
	}
	c.hideTimer = c.scheduler.AfterFunc(domain.MessageDuration, func() {
		c.hideTimer = nil
		c.view.HideMessage()
	})
}

func (c *VoteController) block() {
	c.blocked = true
	c.view.SetControlsEnabled(false)
}

func (c *VoteController) unblock() {
	c.blocked = false
	c.view.SetControlsEnabled(true)
}
