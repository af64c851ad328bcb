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


// Package ai provides abstractions for the AI services behind the Buddeee
// assistant.
//
// This package defines interfaces for the two remote AI operations the chat
// pipeline depends on: text embedding (semantic retrieval) and text
// generation (response synthesis). The pipeline and index depend only on
// these abstractions, never on a concrete provider.
//
// # Interfaces
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Produces free-text completions from a prompt
//   - AIProvider: Aggregates both services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, ...) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and assert on call counts.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "basketball game")
//	reply, err := provider.Generator().Generate(ctx, prompt)
package ai
