package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cristianadrielbraun/beam/internal/design"
)

// ID is a backend identifier. The backend emits ids as JSON numbers on some
// routes and strings on others; both decode to the same value.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Int returns the numeric form of id, or 0.
func (id ID) Int() int64 {
	n, _ := strconv.ParseInt(string(id), 10, 64)
	return n
}

type User struct {
	ID    ID     `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Record is a persisted QR code.
type Record struct {
	ID         ID        `json:"id"`
	Name       string    `json:"name"`
	QRType     string    `json:"qr_type"`
	TargetURL  string    `json:"target_url"`
	DesignJSON string    `json:"design_json"`
	ScanCount  int       `json:"scan_count"`
	ProjectID  ID        `json:"project_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Design decodes the stored design, falling back to the default.
func (r Record) Design() (design.Design, error) {
	return design.Parse(r.DesignJSON)
}

// DisplayName is the record name or a placeholder.
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return "Untitled QR"
}

type CreateQRRequest struct {
	Name      string        `json:"name"`
	QRType    string        `json:"qr_type"`
	TargetURL string        `json:"target_url"`
	Design    design.Design `json:"design"`
}

type UpdateQRRequest struct {
	Name      string        `json:"name"`
	TargetURL string        `json:"target_url"`
	Design    design.Design `json:"design"`
}

// Summary is the scan analytics of one code or of the whole account.
type Summary struct {
	TotalScans int            `json:"total_scans"`
	UniqueIPs  int            `json:"unique_ips"`
	Countries  map[string]int `json:"countries"`
	Devices    map[string]int `json:"devices"`
	Browsers   map[string]int `json:"browsers"`
}

type TimePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

type Project struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Count     int       `json:"count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SettingsRequest struct {
	Name            string `json:"name"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}
