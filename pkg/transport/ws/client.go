package ws

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/peter-kozarec/riskblend/pkg/utility"
)

var (
	ErrClosed           = errors.New("client closed")
	ErrResponseMismatch = errors.New("response does not match request")
)

// Client issues scoring requests over one connection. Calls are serialized.
// A failed exchange leaves the connection in an unknown state, so the client
// closes it and every later call returns ErrClosed.
type Client struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to dial %q: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

// Do sends req and waits for its response. Requests without an id get one.
// A response carrying an error is returned together with an error wrapping
// ErrRemote.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	if req.ID == "" {
		req.ID = strconv.FormatUint(utility.NewRequestID(), 10)
	}

	data, err := MarshalRequest(req)
	if err != nil {
		return Response{}, fmt.Errorf("unable to marshal request: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Response{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	deadline, _ := ctx.Deadline()
	_ = c.conn.SetWriteDeadline(deadline)
	_ = c.conn.SetReadDeadline(deadline)

	// unblocks a pending read or write once ctx is cancelled
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetWriteDeadline(time.Now())
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		c.fail()
		return Response{}, fmt.Errorf("unable to write request: %w", contextError(ctx, err))
	}

	_, payload, err := c.conn.ReadMessage()
	if err != nil {
		c.fail()
		return Response{}, fmt.Errorf("unable to read response: %w", contextError(ctx, err))
	}

	resp, err := UnmarshalResponse(payload)
	if err != nil {
		c.fail()
		return resp, err
	}
	if resp.ID != req.ID {
		c.fail()
		return resp, fmt.Errorf("%w: sent %q, received %q", ErrResponseMismatch, req.ID, resp.ID)
	}
	if resp.Error != "" {
		return resp, fmt.Errorf("%w: %s", ErrRemote, resp.Error)
	}
	return resp, nil
}

// fail drops the connection. The caller holds mu.
func (c *Client) fail() {
	c.closed = true
	_ = c.conn.Close()
}

func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}
	return err
}

func (c *Client) Sharpe(ctx context.Context, returns []float64, riskFreeRate float64) (float64, error) {
	resp, err := c.Do(ctx, Request{Op: OpSharpe, Returns: returns, RiskFreeRate: &riskFreeRate})
	if err != nil {
		return 0, err
	}
	return resp.SharpeRatio, nil
}

func (c *Client) Blend(ctx context.Context, returns []float64, existingRiskScore, sharpeRatioWeight float64) (float64, error) {
	resp, err := c.Do(ctx, Request{
		Op:                OpBlend,
		Returns:           returns,
		ExistingRiskScore: &existingRiskScore,
		SharpeRatioWeight: &sharpeRatioWeight,
	})
	if err != nil {
		return 0, err
	}
	return resp.UpdatedRiskScore, nil
}
