package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

var ErrPingFail = errors.New("ping failed")

type Client struct {
	httpC http.Client
}

// Connect attempts to connect to the IPC socket as client.
func Connect() (*Client, error) {
	conn, err := Dial()
	if err != nil {
		return nil, err
	}
	conn.Close()
	client := newClient(func() (net.Conn, error) { return Dial() })
	if err := client.Ping(); err != nil {
		log.Println("ping error")
		return nil, err
	}
	return client, nil
}

func newClient(dial func() (net.Conn, error)) *Client {
	return &Client{httpC: http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return dial()
			},
		},
	}}
}

func (c *Client) Ping() error {
	if c.makeSimpleRequest(http.MethodGet, PingPath) != nil {
		return ErrPingFail
	}
	return nil
}

func (c *Client) PlayPause() error {
	return c.makeSimpleRequest(http.MethodPost, PlayPausePath)
}

func (c *Client) Next() error {
	return c.makeSimpleRequest(http.MethodPost, NextPath)
}

func (c *Client) Previous() error {
	return c.makeSimpleRequest(http.MethodPost, PreviousPath)
}

func (c *Client) VolumeUp() error {
	return c.makeSimpleRequest(http.MethodPost, VolumeUpPath)
}

func (c *Client) VolumeDown() error {
	return c.makeSimpleRequest(http.MethodPost, VolumeDownPath)
}

func (c *Client) Mute() error {
	return c.makeSimpleRequest(http.MethodPost, MutePath)
}

func (c *Client) Show() error {
	return c.makeSimpleRequest(http.MethodPost, ShowPath)
}

func (c *Client) Quit() error {
	return c.makeSimpleRequest(http.MethodPost, QuitPath)
}

func (c *Client) NowPlaying() (NowPlaying, error) {
	var np NowPlaying
	resp, err := c.httpC.Get("http://vrmusicremote" + NowPlayingPath)
	if err != nil {
		return np, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return np, decodeErr(resp)
	}
	err = json.NewDecoder(resp.Body).Decode(&np)
	return np, err
}

func (c *Client) makeSimpleRequest(method string, path string) error {
	var resp *http.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = c.httpC.Get("http://vrmusicremote" + path)
	case http.MethodPost:
		resp, err = c.httpC.Post("http://vrmusicremote"+path, "application/json", nil)
	}

	if err != nil {
		log.Printf("http err: %v\n", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeErr(resp)
	}
	return nil
}

func decodeErr(resp *http.Response) error {
	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil || r.Error == "" {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return errors.New(r.Error)
}
