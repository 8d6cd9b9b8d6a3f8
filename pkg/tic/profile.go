package tic

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// maxProfileSlots is fixed by the protocol: a provider calendar profile
// carries at most 11 change points.
const maxProfileSlots = 11

// profileEndToken terminates the populated slots of a profile payload.
const profileEndToken = "NONUTILE"

// ProfileSlot is one tariff change point: the switch time plus the 16-bit
// selector choosing the tariff register from that time on.
type ProfileSlot struct {
	Hour     uint8  `json:"hour"`
	Minute   uint8  `json:"minute"`
	Selector uint16 `json:"selector"`
}

// Profile is one calendar axis of the provider schedule (next day or peak
// days): up to 11 change points, Count of them populated.
type Profile struct {
	Count int
	Slots [maxProfileSlots]ProfileSlot
}

func (p Profile) MarshalJSON() ([]byte, error) {
	type jsonSlot struct {
		Hour     uint8  `json:"hour"`
		Minute   uint8  `json:"minute"`
		Selector string `json:"selector"`
	}
	slots := make([]jsonSlot, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		slots = append(slots, jsonSlot{
			Hour:     p.Slots[i].Hour,
			Minute:   p.Slots[i].Minute,
			Selector: fmt.Sprintf("0x%04x", p.Slots[i].Selector),
		})
	}
	return json.Marshal(struct {
		Count int        `json:"count"`
		Slots []jsonSlot `json:"slots"`
	}{Count: p.Count, Slots: slots})
}

// parseProfileSlot decodes one "HHMMSSSS" token: two decimal digit pairs for
// hour and minute, then the hex selector.
func parseProfileSlot(token string) (ProfileSlot, error) {
	var slot ProfileSlot
	if len(token) < 5 {
		return slot, fmt.Errorf("tic: profile token %q too short", token)
	}

	hour, err := strconv.ParseUint(token[0:2], 10, 8)
	if err != nil {
		return slot, fmt.Errorf("tic: profile token %q: bad hour", token)
	}
	minute, err := strconv.ParseUint(token[2:4], 10, 8)
	if err != nil {
		return slot, fmt.Errorf("tic: profile token %q: bad minute", token)
	}
	selector, err := strconv.ParseUint(token[4:], 16, 16)
	if err != nil {
		return slot, fmt.Errorf("tic: profile token %q: bad selector", token)
	}

	slot.Hour = uint8(hour)
	slot.Minute = uint8(minute)
	slot.Selector = uint16(selector)
	return slot, nil
}

func parseProfile(payload string) (Profile, error) {
	var profile Profile
	for _, token := range strings.Fields(payload) {
		if token == profileEndToken {
			break
		}
		if profile.Count == maxProfileSlots {
			return profile, fmt.Errorf("tic: profile has more than %d slots", maxProfileSlots)
		}
		slot, err := parseProfileSlot(token)
		if err != nil {
			return profile, err
		}
		profile.Slots[profile.Count] = slot
		profile.Count++
	}
	return profile, nil
}
