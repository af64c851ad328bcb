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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEvent indicates an Event failed validation.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyLocation indicates the Location field is empty.
	ErrEmptyLocation = errors.New("location cannot be empty")

	// ErrEmptyEventType indicates the EventType field is empty.
	ErrEmptyEventType = errors.New("event type cannot be empty")

	// ErrInvalidCapacity indicates participant counts are inconsistent.
	ErrInvalidCapacity = errors.New("current participants cannot exceed max participants")

	// ErrInvalidResponseType indicates an unrecognized ChatResponse type tag.
	ErrInvalidResponseType = errors.New("invalid response type")
)
