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


// Package chatbot implements the Buddeee assistant's conversational pipeline.
//
// Each chat request flows through three stages in strict sequence:
//
//  1. Retrieve: semantic search over the embedding index for events relevant
//     to the user's message.
//  2. Synthesize: compose a prompt from the message, conversation history and
//     retrieved events, call the generation model, and parse its output into
//     a tagged response.
//  3. Verify: reconcile any referenced events against the authoritative
//     store, refreshing participant counts and dropping deleted entries.
//
// Every stage degrades gracefully: retrieval failures continue with no
// context, generation or parse failures fall back to a plain text reply, and
// store failures during verification fail open. Chat never returns an error
// to its caller.
package chatbot
