package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"checkers/internal/client/display"
)

type Client struct {
	BaseURL    string
	SeatToken  string
	HTTPClient *http.Client
	Verbose    bool
	Out        io.Writer
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Long-polls hold the request for up to 25s
			Timeout: 30 * time.Second,
		},
		Out: os.Stdout,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

// SetToken sets the seat token sent with every request
func (c *Client) SetToken(token string) {
	c.SeatToken = token
}

func (c *Client) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Client) doRequest(method, path string, body any, result any) error {
	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
		bodyStr = string(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.SeatToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.SeatToken)
	}

	c.printf("\n%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	if bodyStr != "" {
		if c.Verbose {
			var prettyBody any
			json.Unmarshal([]byte(bodyStr), &prettyBody)
			prettyJSON, _ := json.MarshalIndent(prettyBody, "", "  ")
			c.printf("%sRequest Body:%s\n%s\n", display.Cyan, display.Reset, string(prettyJSON))
		} else {
			c.printf("%s%s%s\n", display.Blue, bodyStr, display.Reset)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.printf("%s[ERROR] %s%s\n", display.Red, err.Error(), display.Reset)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	statusColor := display.Green
	if resp.StatusCode >= 400 {
		statusColor = display.Red
	}
	c.printf("%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)

	if c.Verbose && len(respBody) > 0 {
		var prettyResp any
		if err := json.Unmarshal(respBody, &prettyResp); err == nil {
			prettyJSON, _ := json.MarshalIndent(prettyResp, "", "  ")
			c.printf("%sResponse Body:%s\n%s\n", display.Cyan, display.Reset, string(prettyJSON))
		} else {
			c.printf("%sResponse:%s\n%s\n", display.Cyan, display.Reset, string(respBody))
		}
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Code != "" {
			if !c.Verbose && errResp.Details != "" {
				c.printf("%sDetails: %s%s\n", display.Red, errResp.Details, display.Reset)
			}
			return fmt.Errorf("%s (%s)", errResp.Error, errResp.Code)
		}
		if !c.Verbose {
			c.printf("%s%s%s\n", display.Red, string(respBody), display.Reset)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			c.printf("%sResponse parse error: %s%s\n", display.Red, err.Error(), display.Reset)
			c.printf("%sRaw response: %s%s\n", display.Green, string(respBody), display.Reset)
			return err
		}
	}

	return nil
}

// API Methods

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest("GET", "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateRoom(req *CreateRoomRequest) (*RoomResponse, error) {
	var resp RoomResponse
	err := c.doRequest("POST", "/api/v1/rooms", req, &resp)
	return &resp, err
}

func (c *Client) ListRooms() (*RoomListResponse, error) {
	var resp RoomListResponse
	err := c.doRequest("GET", "/api/v1/rooms", nil, &resp)
	return &resp, err
}

func (c *Client) GetRoom(roomID string) (*RoomResponse, error) {
	var resp RoomResponse
	err := c.doRequest("GET", "/api/v1/rooms/"+roomID, nil, &resp)
	return &resp, err
}

// GetRoomWithPoll waits until the room's move count differs from moveCount
func (c *Client) GetRoomWithPoll(roomID string, moveCount int) (*RoomResponse, error) {
	var resp RoomResponse
	path := fmt.Sprintf("/api/v1/rooms/%s?wait=true&moveCount=%d", roomID, moveCount)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteRoom(roomID string) error {
	return c.doRequest("DELETE", "/api/v1/rooms/"+roomID, nil, nil)
}

func (c *Client) GetBoard(roomID string) (*BoardResponse, error) {
	var resp BoardResponse
	err := c.doRequest("GET", "/api/v1/rooms/"+roomID+"/board", nil, &resp)
	return &resp, err
}

func (c *Client) LegalMoves(roomID, from string) (*LegalMovesResponse, error) {
	var resp LegalMovesResponse
	path := "/api/v1/rooms/" + roomID + "/moves?from=" + url.QueryEscape(from)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) MakeMove(roomID, from, to string) (*RoomResponse, error) {
	req := &MoveRequest{From: from, To: to}
	var resp RoomResponse
	err := c.doRequest("POST", "/api/v1/rooms/"+roomID+"/moves", req, &resp)
	return &resp, err
}

func (c *Client) UndoMoves(roomID string, count int) (*RoomResponse, error) {
	req := &UndoRequest{Count: count}
	var resp RoomResponse
	err := c.doRequest("POST", "/api/v1/rooms/"+roomID+"/undo", req, &resp)
	return &resp, err
}

func (c *Client) ResetRoom(roomID string) (*RoomResponse, error) {
	var resp RoomResponse
	err := c.doRequest("POST", "/api/v1/rooms/"+roomID+"/reset", nil, &resp)
	return &resp, err
}

func (c *Client) ClaimSeat(roomID, color, password string) (*SeatResponse, error) {
	req := &SeatRequest{Color: color, Password: password}
	var resp SeatResponse
	err := c.doRequest("POST", "/api/v1/rooms/"+roomID+"/seats", req, &resp)
	return &resp, err
}

// RawRequest performs a raw HTTP request for debugging purposes
func (c *Client) RawRequest(method, path string, body string) error {
	var bodyData any
	if body != "" {
		if err := json.Unmarshal([]byte(body), &bodyData); err != nil {
			bodyData = body
		}
	}

	return c.doRequest(method, path, bodyData, nil)
}
