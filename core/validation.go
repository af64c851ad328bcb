// Copyright 2025 Beyond Binary
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateEvent validates an Event according to domain rules.
//
// Validation rules:
//   - Title, Location and EventType must not be empty
//   - CurrentParticipants must not exceed MaxParticipants when a cap is set
//
// NOT validated:
//   - ID (0 is valid before the database assigns one)
//   - Latitude/Longitude (events without coordinates are allowed)
func ValidateEvent(event *Event) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidEvent)
	}

	if event.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyTitle)
	}

	if event.Location == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyLocation)
	}

	if event.EventType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyEventType)
	}

	if event.MaxParticipants > 0 && event.CurrentParticipants > event.MaxParticipants {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrInvalidCapacity)
	}

	return nil
}

// ValidateResponseType validates that a ResponseType is one of the three
// recognized tags.
func ValidateResponseType(t ResponseType) error {
	switch t {
	case ResponseTypeText, ResponseTypeEvents, ResponseTypeSuggestions:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidResponseType, t)
}
