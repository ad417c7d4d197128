// Package apitest provides an in-memory overtime backend for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/overtime"
)

// Request is a request the backend received.
type Request struct {
	Method    string
	Path      string
	Body      map[string]any
	Auth      string
	RequestID string
}

// Backend is a fake REST backend. Handlers run under Mu; tests that edit
// fields while a poller is running must take it too.
type Backend struct {
	Mu sync.Mutex

	Username       string
	Password       string
	Token          string
	SessionExpires string
	Profile        api.Profile

	Employees    []api.Employee
	Users        []api.User
	Overtime     []overtime.Entry
	TripleOT     []api.TripleOTDate
	Settings     *api.OTSettings
	Reasons      []api.Reason
	DownloadLogs []api.DownloadLog
	AuditLogs    []api.AuditLog
	Workbook     []byte

	// FailPaths maps "METHOD /path" to a status code returned instead of
	// the normal handler.
	FailPaths map[string]int

	Requests []Request

	server *httptest.Server
	nextID int
}

// New starts a backend that is closed when the test ends.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		Username:       "hr.admin",
		Password:       "secret",
		Token:          "test-token",
		SessionExpires: time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		Profile:        api.Profile{ID: "u1", Username: "hr.admin", Email: "hr@example.com", IsAdmin: true, CanApprove: true},
		FailPaths:      map[string]int{},
	}
	b.server = httptest.NewServer(b.routes())
	t.Cleanup(b.server.Close)
	return b
}

// URL is the API base URL.
func (b *Backend) URL() string { return b.server.URL + "/api" }

// HealthURL is the health probe URL.
func (b *Backend) HealthURL() string { return b.server.URL + "/" }

// Client returns an api client authenticated with the backend token.
func (b *Backend) Client() *api.Client {
	return api.NewClient(b.URL(), api.WithToken(func() (string, error) { return b.Token, nil }))
}

// Calls returns the recorded requests matching method and path.
func (b *Backend) Calls(method, path string) []Request {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	var out []Request
	for _, r := range b.Requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, api.HealthMarker)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(b.record)
		r.Post("/auth/login", b.login)

		r.Group(func(r chi.Router) {
			r.Use(b.authenticate)

			r.Post("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
			})
			r.Get("/auth/profile", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, b.Profile)
			})
			r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
				var in api.Registration
				decode(r, &in)
				b.Users = append(b.Users, api.User{ID: b.id(), Username: in.Username, Email: in.Email, IsAdmin: in.IsAdmin, CanApprove: in.CanApprove})
				writeJSON(w, http.StatusCreated, map[string]string{"message": "registered"})
			})

			r.Get("/employees", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, b.Employees) })
			r.Post("/employees", b.createEmployee)
			r.Put("/employees/{id}", b.updateEmployee)
			r.Delete("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
				b.Employees = remove(b.Employees, chi.URLParam(r, "id"), func(e api.Employee) string { return e.ID })
				w.WriteHeader(http.StatusNoContent)
			})

			r.Get("/users/", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, b.Users) })
			r.Put("/users/{id}", b.updateUser)
			r.Delete("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
				b.Users = remove(b.Users, chi.URLParam(r, "id"), func(u api.User) string { return u.ID })
				w.WriteHeader(http.StatusNoContent)
			})

			r.Get("/overtime", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, b.Overtime) })
			r.Get("/overtime/pending", b.pending)
			r.Get("/overtime/export", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
				_, _ = w.Write(b.Workbook)
			})
			r.Get("/overtime/audit-logs", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, b.AuditLogs) })
			r.Post("/overtime", b.createOvertime)
			r.Put("/overtime/{id}", b.updateOvertime)
			r.Put("/overtime/{id}/approve", b.decide(overtime.StatusApproved, api.AuditApprove))
			r.Put("/overtime/{id}/reject", b.decide(overtime.StatusRejected, api.AuditReject))
			r.Delete("/overtime/{id}", b.deleteOvertime)

			r.Get("/tripleot", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, b.TripleOT) })
			r.Post("/tripleot", func(w http.ResponseWriter, r *http.Request) {
				var in api.TripleOTDate
				decode(r, &in)
				in.ID = b.id()
				b.TripleOT = append(b.TripleOT, in)
				writeJSON(w, http.StatusCreated, in)
			})
			r.Put("/tripleot/{id}", func(w http.ResponseWriter, r *http.Request) {
				var in api.TripleOTDate
				decode(r, &in)
				for i := range b.TripleOT {
					if b.TripleOT[i].ID == chi.URLParam(r, "id") {
						in.ID = b.TripleOT[i].ID
						b.TripleOT[i] = in
						writeJSON(w, http.StatusOK, in)
						return
					}
				}
				writeJSON(w, http.StatusNotFound, map[string]string{"message": "triple OT date not found"})
			})
			r.Delete("/tripleot/{id}", func(w http.ResponseWriter, r *http.Request) {
				b.TripleOT = remove(b.TripleOT, chi.URLParam(r, "id"), func(d api.TripleOTDate) string { return d.ID })
				w.WriteHeader(http.StatusNoContent)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/overtime-configs/all", func(w http.ResponseWriter, _ *http.Request) {
					if b.Settings == nil {
						writeJSON(w, http.StatusNotFound, map[string]string{"message": "no settings"})
						return
					}
					writeJSON(w, http.StatusOK, b.Settings)
				})
				r.Post("/overtime-configs/create", b.storeSettings)
				r.Put("/overtime-configs/update", b.storeSettings)
				r.Delete("/overtime-configs/delete", func(w http.ResponseWriter, _ *http.Request) {
					b.Settings = nil
					w.WriteHeader(http.StatusNoContent)
				})
				r.Get("/overtime-reasons", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, b.Reasons) })
				r.Post("/overtime-reasons", func(w http.ResponseWriter, r *http.Request) {
					var in api.Reason
					decode(r, &in)
					if strings.TrimSpace(in.Option) == "" {
						writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Reason cannot be empty"})
						return
					}
					in.ID = b.id()
					b.Reasons = append(b.Reasons, in)
					writeJSON(w, http.StatusCreated, in)
				})
				r.Delete("/overtime-reasons/{id}", func(w http.ResponseWriter, r *http.Request) {
					b.Reasons = remove(b.Reasons, chi.URLParam(r, "id"), func(x api.Reason) string { return x.ID })
					w.WriteHeader(http.StatusNoContent)
				})
			})

			r.Get("/downloadLog", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, b.DownloadLogs) })
			r.Post("/downloadLog", func(w http.ResponseWriter, r *http.Request) {
				var in api.DownloadLog
				decode(r, &in)
				in.ID = b.id()
				in.User = &api.LogUser{Username: b.Profile.Username}
				b.DownloadLogs = append(b.DownloadLogs, in)
				writeJSON(w, http.StatusCreated, in)
			})
		})
	})
	return r
}

// record logs the request, applies FailPaths and serializes handlers on Mu.
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(raw)))
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		b.Mu.Lock()
		defer b.Mu.Unlock()

		path := strings.TrimPrefix(r.URL.Path, "/api")
		b.Requests = append(b.Requests, Request{
			Method:    r.Method,
			Path:      path,
			Body:      body,
			Auth:      r.Header.Get("Authorization"),
			RequestID: r.Header.Get(api.RequestIDHeader),
		})
		if status, ok := b.FailPaths[r.Method+" "+path]; ok {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in api.Credentials
	decode(r, &in)
	if in.Username != b.Username || in.Password != b.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResponse{
		Token:          b.Token,
		SessionExpires: b.SessionExpires,
		Username:       b.Username,
		IsAdmin:        b.Profile.IsAdmin,
		CanApprove:     b.Profile.CanApprove,
	})
}

func (b *Backend) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in api.Employee
	decode(r, &in)
	for _, e := range b.Employees {
		if e.EmployeeNumber == in.EmployeeNumber {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Employee number already exists"})
			return
		}
	}
	in.ID = b.id()
	b.Employees = append(b.Employees, in)
	writeJSON(w, http.StatusCreated, in)
}

func (b *Backend) updateEmployee(w http.ResponseWriter, r *http.Request) {
	var in api.Employee
	decode(r, &in)
	for i := range b.Employees {
		if b.Employees[i].ID == chi.URLParam(r, "id") {
			in.ID = b.Employees[i].ID
			b.Employees[i] = in
			writeJSON(w, http.StatusOK, in)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
}

func (b *Backend) updateUser(w http.ResponseWriter, r *http.Request) {
	var in api.UserUpdate
	decode(r, &in)
	for i := range b.Users {
		if b.Users[i].ID == chi.URLParam(r, "id") {
			b.Users[i] = api.User{ID: b.Users[i].ID, Username: in.Username, Email: in.Email, IsAdmin: in.IsAdmin, CanApprove: in.CanApprove}
			writeJSON(w, http.StatusOK, b.Users[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
}

func (b *Backend) pending(w http.ResponseWriter, _ *http.Request) {
	list := []overtime.Entry{}
	for _, e := range b.Overtime {
		if e.Status == overtime.StatusPending {
			list = append(list, e)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": list})
}

func (b *Backend) createOvertime(w http.ResponseWriter, r *http.Request) {
	var in overtime.Entry
	decode(r, &in)
	in.ID = b.id()
	if in.Status == "" {
		in.Status = overtime.StatusPending
	}
	b.Overtime = append(b.Overtime, in)
	b.audit(api.AuditCreate, map[string]any{"overtime": in})
	writeJSON(w, http.StatusCreated, in)
}

func (b *Backend) updateOvertime(w http.ResponseWriter, r *http.Request) {
	var in overtime.Entry
	decode(r, &in)
	i := b.findOvertime(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Overtime not found"})
		return
	}
	in.ID = b.Overtime[i].ID
	b.Overtime[i] = in
	b.audit(api.AuditUpdate, map[string]any{"updatedFields": in})
	writeJSON(w, http.StatusOK, in)
}

func (b *Backend) deleteOvertime(w http.ResponseWriter, r *http.Request) {
	i := b.findOvertime(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Overtime not found"})
		return
	}
	deleted := b.Overtime[i]
	b.Overtime = append(b.Overtime[:i], b.Overtime[i+1:]...)
	b.audit(api.AuditDelete, map[string]any{"deleted": true, "overtime": deleted})
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) decide(status overtime.Status, action api.AuditAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in api.Decision
		decode(r, &in)
		i := b.findOvertime(chi.URLParam(r, "id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Overtime not found"})
			return
		}
		previous := b.Overtime[i].Status
		b.Overtime[i].Status = status
		if in.ApprovedOT != nil {
			b.Overtime[i].ApprovedOT = *in.ApprovedOT
		}
		if in.Reason != "" {
			b.Overtime[i].Reason = in.Reason
		}
		b.audit(action, map[string]any{
			"approvedot":     b.Overtime[i].ApprovedOT,
			"previousStatus": previous,
			"newStatus":      status,
			"updatedReason":  b.Overtime[i].Reason,
		})
		writeJSON(w, http.StatusOK, b.Overtime[i])
	}
}

func (b *Backend) storeSettings(w http.ResponseWriter, r *http.Request) {
	var in api.OTSettings
	decode(r, &in)
	b.Settings = &in
	writeJSON(w, http.StatusOK, in)
}

func (b *Backend) audit(action api.AuditAction, details map[string]any) {
	performedBy, _ := b.Requests[len(b.Requests)-1].Body["performedBy"].(string)
	raw, _ := json.Marshal(details)
	b.AuditLogs = append(b.AuditLogs, api.AuditLog{
		ID:          b.id(),
		Action:      action,
		PerformedBy: performedBy,
		Details:     raw,
		CreatedAt:   time.Now().UTC(),
	})
}

func (b *Backend) findOvertime(id string) int {
	for i, e := range b.Overtime {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) id() string {
	b.nextID++
	return fmt.Sprintf("id-%d", b.nextID)
}

func remove[T any](items []T, id string, key func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}

func decode(r *http.Request, v any) {
	_ = json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
