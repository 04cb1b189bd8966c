package warmup_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rostrumlabs/rostrum/pkg/llm/provider"
	"github.com/rostrumlabs/rostrum/pkg/logger"
	"github.com/rostrumlabs/rostrum/pkg/warmup"
)

var _ = Describe("Probe", func() {
	var (
		mu     sync.Mutex
		probed []string
	)

	BeforeEach(func() {
		mu.Lock()
		probed = nil
		mu.Unlock()
	})

	recordModel := func(m string) {
		mu.Lock()
		probed = append(probed, m)
		mu.Unlock()
	}

	probedModels := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), probed...)
	}

	Context("against a local generate endpoint", func() {
		var server *httptest.Server

		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Model  string `json:"model"`
					Prompt string `json:"prompt"`
				}
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body.Prompt).To(Equal("hi"))
				recordModel(body.Model)
				json.NewEncoder(w).Encode(map[string]string{"response": "hello"})
			}))
		})

		AfterEach(func() {
			server.Close()
		})

		It("probes the fixed local model set", func() {
			registry := provider.NewBuiltinRegistry(server.URL)
			client := provider.NewClient(registry, provider.Credentials{}, logger.NewNop())
			probe := warmup.NewProbe(client, provider.Ollama, "", time.Second, logger.NewNop())

			Eventually(probe.Start(context.Background())).Should(BeClosed())
			Expect(probedModels()).To(Equal([]string{"llama3", "mistral"}))
		})
	})

	Context("against a hosted chat endpoint", func() {
		var server *httptest.Server

		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Model string `json:"model"`
				}
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				recordModel(body.Model)
				content := "hello"
				json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]any{"content": content}},
					},
				})
			}))
		})

		AfterEach(func() {
			server.Close()
		})

		It("probes only the configured model", func() {
			registry := provider.NewRegistry(provider.Descriptor{
				Name:             provider.OpenAI,
				CredentialEnvKey: "OPENAI_API_KEY",
				Endpoint:         server.URL,
				DefaultModel:     "gpt-4o-mini",
				Shape:            provider.ShapeChat,
			})
			creds := provider.Credentials{"OPENAI_API_KEY": "sk-test"}
			client := provider.NewClient(registry, creds, logger.NewNop())
			probe := warmup.NewProbe(client, provider.OpenAI, "gpt-4o-mini", time.Second, logger.NewNop())

			Eventually(probe.Start(context.Background())).Should(BeClosed())
			Expect(probedModels()).To(Equal([]string{"gpt-4o-mini"}))
		})
	})

	Context("when the endpoint is unreachable", func() {
		It("logs each failure and still finishes", func() {
			dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			dead.Close()

			var buf bytes.Buffer
			log := logger.NewLoggerWithWriters(false, &buf)

			registry := provider.NewBuiltinRegistry(dead.URL)
			client := provider.NewClient(registry, provider.Credentials{}, logger.NewNop())
			probe := warmup.NewProbe(client, provider.Ollama, "", time.Second, log)

			Eventually(probe.Start(context.Background())).Should(BeClosed())

			out := buf.String()
			Expect(out).To(ContainSubstring("warm-up probe failed"))
			Expect(out).To(ContainSubstring("llama3"))
			Expect(out).To(ContainSubstring("mistral"))
		})
	})
})
