package auth

import (
	"context"
	"sync"

	"github.com/mcoot/eggbreaker/internal/model"
)

// Listener receives identity changes; nil means signed out
type Listener = func(identity *model.Identity)

type subscription struct {
	fn Listener
}

// Client is one user's view of the identity provider. It tracks the
// current identity and notifies subscribers of every change, synchronously
// and in subscription order.
type Client struct {
	service *Service

	mu          sync.Mutex
	current     *model.Identity
	subscribers []*subscription

	// serializes notification so listeners see changes in order
	notifyMu sync.Mutex
}

// NewClient creates a signed-out client
func NewClient(service *Service) *Client {
	return &Client{service: service}
}

// SignUp creates an account and signs in as it
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (*model.Identity, error) {
	identity, err := c.service.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}
	c.setCurrent(identity)
	return identity, nil
}

// SignIn signs in with email and password
func (c *Client) SignIn(ctx context.Context, email, password string) (*model.Identity, error) {
	identity, err := c.service.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.setCurrent(identity)
	return identity, nil
}

// SignOut clears the current identity
func (c *Client) SignOut(ctx context.Context) error {
	c.setCurrent(nil)
	return nil
}

// Current returns the signed-in identity, or nil
func (c *Client) Current() *model.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyIdentity(c.current)
}

// Subscribe registers fn and immediately delivers the current identity.
// The returned function removes the subscription.
func (c *Client) Subscribe(fn Listener) func() {
	sub := &subscription{fn: fn}

	c.notifyMu.Lock()
	c.mu.Lock()
	c.subscribers = append(c.subscribers, sub)
	current := copyIdentity(c.current)
	c.mu.Unlock()
	fn(current)
	c.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subscribers {
				if s == sub {
					c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
					break
				}
			}
		})
	}
}

func (c *Client) setCurrent(identity *model.Identity) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.current = copyIdentity(identity)
	subs := append([]*subscription(nil), c.subscribers...)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.fn(copyIdentity(identity))
	}
}

func copyIdentity(identity *model.Identity) *model.Identity {
	if identity == nil {
		return nil
	}
	cp := *identity
	return &cp
}
