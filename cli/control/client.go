package control

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct{ addr string }

func NewClient(addr string) *Client { return &Client{addr: addr} }

func (c *Client) SetAggregateInterval(d time.Duration) (time.Duration, error) {
	return c.setInterval("/set-aggregate-interval", d)
}

func (c *Client) SetProcessInterval(d time.Duration) (time.Duration, error) {
	return c.setInterval("/set-process-interval", d)
}

func (c *Client) setInterval(path string, d time.Duration) (time.Duration, error) {
	body, _ := json.Marshal(map[string]interface{}{"duration": d.String()})
	resp, err := http.Post("http://"+c.addr+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("server error: %s", resp.Status)
	}
	var r struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&r)
	if r.Old != "" {
		if old, err := time.ParseDuration(r.Old); err == nil {
			return old, nil
		}
	}
	return 0, nil
}

func (c *Client) Status() (StatusResponse, error) {
	resp, err := http.Get("http://" + c.addr + "/status")
	if err != nil {
		return StatusResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return StatusResponse{}, fmt.Errorf("server error: %s", resp.Status)
	}
	var st StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return StatusResponse{}, err
	}
	return st, nil
}
