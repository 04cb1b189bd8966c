package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/rostrumlabs/rostrum/pkg/llm/provider"
)

// stubRegistry builds a single-provider registry pointed at a test server.
func stubRegistry(name, endpoint, credKey string, shape provider.Shape) *provider.Registry {
	return provider.NewRegistry(provider.Descriptor{
		Name:             name,
		CredentialEnvKey: credKey,
		Endpoint:         endpoint,
		DefaultModel:     "test-model",
		Shape:            shape,
	})
}

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		logger *zap.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = zap.NewNop()
	})

	Context("with an unknown provider", func() {
		It("returns UnknownProviderError without calling anywhere", func() {
			reg := provider.NewBuiltinRegistry("http://localhost:11434")
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			_, err := c.Call(ctx, "acme", "model", "hi")

			var unknown provider.UnknownProviderError
			Expect(errors.As(err, &unknown)).To(BeTrue())
			Expect(unknown.Name).To(Equal("acme"))
		})
	})

	Context("with a missing credential", func() {
		It("returns MissingCredentialError before any network call", func() {
			called := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
			}))
			defer server.Close()

			reg := stubRegistry("hosted", server.URL, "HOSTED_API_KEY", provider.ShapeChat)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			_, err := c.Call(ctx, "hosted", "model", "hi")

			var missing provider.MissingCredentialError
			Expect(errors.As(err, &missing)).To(BeTrue())
			Expect(missing.EnvKey).To(Equal("HOSTED_API_KEY"))
			Expect(called).To(BeFalse())
		})
	})

	Context("with a chat-style provider", func() {
		It("sends the bearer header and chat body, and trims the reply", func() {
			var gotAuth string
			var gotBody map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				raw, _ := io.ReadAll(r.Body)
				json.Unmarshal(raw, &gotBody)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"choices":[{"message":{"content":" hi "}}]}`))
			}))
			defer server.Close()

			reg := stubRegistry("hosted", server.URL, "HOSTED_API_KEY", provider.ShapeChat)
			c := provider.NewClient(reg, provider.Credentials{"HOSTED_API_KEY": "tok-1"}, logger)

			text, err := c.Call(ctx, "hosted", "test-model", "say hi")
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("hi"))

			Expect(gotAuth).To(Equal("Bearer tok-1"))
			Expect(gotBody["model"]).To(Equal("test-model"))
			Expect(gotBody["max_tokens"]).To(BeNumerically("==", 500))
			Expect(gotBody["temperature"]).To(BeNumerically("~", 0.7, 0.001))

			messages := gotBody["messages"].([]any)
			Expect(messages).To(HaveLen(1))
			first := messages[0].(map[string]any)
			Expect(first["role"]).To(Equal("user"))
			Expect(first["content"]).To(Equal("say hi"))
		})

		It("returns HTTPError carrying the status on a 500", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("upstream exploded"))
			}))
			defer server.Close()

			reg := stubRegistry("hosted", server.URL, "", provider.ShapeChat)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			_, err := c.Call(ctx, "hosted", "test-model", "hi")

			var httpErr provider.HTTPError
			Expect(errors.As(err, &httpErr)).To(BeTrue())
			Expect(httpErr.Status).To(Equal(http.StatusInternalServerError))
			Expect(httpErr.Body).To(ContainSubstring("upstream exploded"))
		})

		It("returns ShapeError when choices are empty", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"choices":[]}`))
			}))
			defer server.Close()

			reg := stubRegistry("hosted", server.URL, "", provider.ShapeChat)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			_, err := c.Call(ctx, "hosted", "test-model", "hi")

			var shapeErr provider.ShapeError
			Expect(errors.As(err, &shapeErr)).To(BeTrue())
			Expect(string(shapeErr.Raw)).To(ContainSubstring("choices"))
		})

		It("returns ShapeError on a non-JSON 2xx body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("<html>ok</html>"))
			}))
			defer server.Close()

			reg := stubRegistry("hosted", server.URL, "", provider.ShapeChat)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			_, err := c.Call(ctx, "hosted", "test-model", "hi")

			var shapeErr provider.ShapeError
			Expect(errors.As(err, &shapeErr)).To(BeTrue())
		})
	})

	Context("with a generation-style provider", func() {
		It("sends the prompt body and reads the response field", func() {
			var gotBody map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				raw, _ := io.ReadAll(r.Body)
				json.Unmarshal(raw, &gotBody)
				w.Write([]byte(`{"response":" generated text\n"}`))
			}))
			defer server.Close()

			reg := stubRegistry("local", server.URL, "", provider.ShapeGenerate)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			text, err := c.Call(ctx, "local", "llama3", "hello")
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("generated text"))

			Expect(gotBody["model"]).To(Equal("llama3"))
			Expect(gotBody["prompt"]).To(Equal("hello"))
			Expect(gotBody["stream"]).To(Equal(false))
			Expect(gotBody).NotTo(HaveKey("messages"))
		})

		It("falls back to results[0].generated_text", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"results":[{"generated_text":"from results"}]}`))
			}))
			defer server.Close()

			reg := stubRegistry("local", server.URL, "", provider.ShapeGenerate)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			text, err := c.Call(ctx, "local", "llama3", "hello")
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("from results"))
		})

		It("returns ShapeError when both fields are absent", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"done":true}`))
			}))
			defer server.Close()

			reg := stubRegistry("local", server.URL, "", provider.ShapeGenerate)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			_, err := c.Call(ctx, "local", "llama3", "hello")

			var shapeErr provider.ShapeError
			Expect(errors.As(err, &shapeErr)).To(BeTrue())
		})
	})

	Context("with transport faults", func() {
		It("normalizes a refused connection into an ordinary error", func() {
			// A server that is already closed refuses connections.
			server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
			endpoint := server.URL
			server.Close()

			reg := stubRegistry("hosted", endpoint, "", provider.ShapeChat)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			_, err := c.Call(ctx, "hosted", "test-model", "hi")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("request failed"))
		})

		It("respects context cancellation", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-r.Context().Done()
			}))
			defer server.Close()

			reg := stubRegistry("hosted", server.URL, "", provider.ShapeChat)
			c := provider.NewClient(reg, provider.Credentials{}, logger)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := c.Call(cancelled, "hosted", "test-model", "hi")
			Expect(err).To(HaveOccurred())
		})
	})
})
