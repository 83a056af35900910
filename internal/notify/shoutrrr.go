package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Shoutrrr pushes reminders through one or more shoutrrr service URLs
// (email, telegram, discord, and the rest of its catalog).
type Shoutrrr struct {
	sender *router.ServiceRouter
}

func NewShoutrrr(urls ...string) (*Shoutrrr, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one notification URL is required")
	}
	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("create shoutrrr sender: %w", err)
	}
	sender.Timeout = 15 * time.Second
	sender.SetLogger(log.New(io.Discard, "", 0))
	return &Shoutrrr{sender: sender}, nil
}

func (n *Shoutrrr) Notify(ctx context.Context, r Reminder) error {
	_ = ctx // the router runs its own per-send timeout

	params := types.Params{}
	params.SetTitle(r.Subject())
	for _, err := range n.sender.Send(r.Body(), &params) {
		if err != nil {
			return fmt.Errorf("send reminder: %w", err)
		}
	}
	return nil
}
