// internal/api/models.go

package api

import (
	"encoding/json"
	"net/http"

	"github.com/intermernet/battery-registry/internal/auth"
	"github.com/intermernet/battery-registry/internal/database"
	"github.com/intermernet/battery-registry/internal/fleet"
)

// --- Request payloads ---

// groupPayload is the body for creating or replacing a group.
type groupPayload struct {
	Name string `json:"name"`
}

// batteryPayload is the body for creating or replacing a battery.
type batteryPayload struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	SetupDate string  `json:"setup_date"`
	Level     int64   `json:"level"`
	Capacity  int64   `json:"capacity"`
	GroupID   *int64  `json:"group_id"`
}

// batteryWire is the lenient JSON shape of batteryPayload: numeric fields
// may arrive as numbers or numeric strings.
type batteryWire struct {
	Name      string       `json:"name"`
	Latitude  json.Number  `json:"latitude"`
	Longitude json.Number  `json:"longitude"`
	SetupDate string       `json:"setup_date"`
	Level     json.Number  `json:"level"`
	Capacity  json.Number  `json:"capacity"`
	GroupID   *json.Number `json:"group_id"`
}

func (p *batteryPayload) UnmarshalJSON(data []byte) error {
	var w batteryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var n numberReader
	*p = batteryPayload{
		Name:      w.Name,
		Latitude:  n.float("latitude", w.Latitude),
		Longitude: n.float("longitude", w.Longitude),
		SetupDate: w.SetupDate,
		Level:     n.int("level", w.Level),
		Capacity:  n.int("capacity", w.Capacity),
	}
	if w.GroupID != nil {
		id := n.int("group_id", *w.GroupID)
		p.GroupID = &id
	}
	return n.err
}

// decodeGroupInput reads a group from a JSON body, or from form and query
// values for any other content type.
func decodeGroupInput(r *http.Request) (fleet.GroupInput, error) {
	var p groupPayload
	if isJSON(r) {
		if err := decodeJSON(r, &p); err != nil {
			return fleet.GroupInput{}, err
		}
	} else {
		f, err := newFormReader(r)
		if err != nil {
			return fleet.GroupInput{}, err
		}
		p.Name = f.str("name")
	}
	return fleet.GroupInput{Name: p.Name}, nil
}

// decodeBatteryInput is the battery counterpart of decodeGroupInput.
func decodeBatteryInput(r *http.Request) (fleet.BatteryInput, error) {
	var p batteryPayload
	if isJSON(r) {
		if err := decodeJSON(r, &p); err != nil {
			return fleet.BatteryInput{}, err
		}
	} else {
		f, err := newFormReader(r)
		if err != nil {
			return fleet.BatteryInput{}, err
		}
		p = batteryPayload{
			Name:      f.str("name"),
			Latitude:  f.float("latitude"),
			Longitude: f.float("longitude"),
			SetupDate: f.str("setup_date"),
			Level:     f.int("level"),
			Capacity:  f.int("capacity"),
			GroupID:   f.optInt("group_id"),
		}
		if f.err != nil {
			return fleet.BatteryInput{}, f.err
		}
	}
	return fleet.BatteryInput{
		Name:      p.Name,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		SetupDate: p.SetupDate,
		Level:     p.Level,
		Capacity:  p.Capacity,
		GroupID:   p.GroupID,
	}, nil
}

// --- Responses ---

// tokenResponse is returned by POST /token.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public view of a directory user. The password hash is never exposed.
type UserResponse struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Disabled bool    `json:"disabled"`
}

func toUserResponse(user auth.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Disabled: user.Disabled,
	}
}

// GroupResponse is the DTO for a group.
type GroupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toGroupResponse(group *database.Group) GroupResponse {
	return GroupResponse{ID: group.ID, Name: group.Name}
}

func toGroupResponseList(groups []database.Group) []GroupResponse {
	responseList := make([]GroupResponse, len(groups))
	for i := range groups {
		responseList[i] = toGroupResponse(&groups[i])
	}
	return responseList
}

// BatteryResponse is the DTO for a battery. GroupID is `null` in JSON for
// batteries without a group.
type BatteryResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	SetupDate string  `json:"setup_date"`
	Level     int64   `json:"level"`
	Capacity  int64   `json:"capacity"`
	GroupID   *int64  `json:"group_id"`
}

func toBatteryResponse(battery *database.Battery) BatteryResponse {
	var groupID *int64
	if battery.GroupID.Valid {
		id := battery.GroupID.Int64
		groupID = &id
	}

	return BatteryResponse{
		ID:        battery.ID,
		Name:      battery.Name,
		Latitude:  battery.Latitude,
		Longitude: battery.Longitude,
		SetupDate: battery.SetupDate,
		Level:     battery.Level,
		Capacity:  battery.Capacity,
		GroupID:   groupID,
	}
}

func toBatteryResponseList(batteries []database.Battery) []BatteryResponse {
	responseList := make([]BatteryResponse, len(batteries))
	for i := range batteries {
		responseList[i] = toBatteryResponse(&batteries[i])
	}
	return responseList
}

// extremesResponse is returned by GET /group/extreme/.
type extremesResponse struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}
