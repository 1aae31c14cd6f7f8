package domain

import (
	"encoding/json"
	"fmt"
)

// ExpiresIn is the wire format for key lifetimes: either a symbolic duration
// tag ("1d", "7d", "1m", "30d", "never") or a raw integer count of days.
type ExpiresIn struct {
	Tag  string
	Days int
}

// IsDays reports whether the value was supplied as a raw day count.
func (e ExpiresIn) IsDays() bool { return e.Tag == "" }

func (e *ExpiresIn) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		*e = ExpiresIn{Tag: tag}
		return nil
	}
	var days int
	if err := json.Unmarshal(data, &days); err == nil {
		if days <= 0 {
			return fmt.Errorf("expiresIn days must be positive")
		}
		*e = ExpiresIn{Days: days}
		return nil
	}
	return fmt.Errorf("expiresIn must be a duration tag or a number of days")
}

func (e ExpiresIn) MarshalJSON() ([]byte, error) {
	if e.IsDays() {
		return json.Marshal(e.Days)
	}
	return json.Marshal(e.Tag)
}
