package transport

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLocks(t *testing.T) {
	Convey("Locks", t, func() {
		locks := NewLocks()

		Convey("Each domain locks independently", func() {
			locks.Lock(DomainDNS)
			locks.Lock(DomainCookie)
			locks.Unlock(DomainDNS)
			locks.Unlock(DomainCookie)
		})

		Convey("Domains have stable names", func() {
			So(DomainDNS.String(), ShouldEqual, "dns")
			So(DomainConnection.String(), ShouldEqual, "connection")
			So(DomainTLSSession.String(), ShouldEqual, "tls-session")
			So(DomainCookie.String(), ShouldEqual, "cookie")
		})

		Convey("A domain excludes concurrent holders", func() {
			locks.Lock(DomainDNS)
			acquired := make(chan struct{})
			go func() {
				locks.Lock(DomainDNS)
				close(acquired)
				locks.Unlock(DomainDNS)
			}()

			select {
			case <-acquired:
				t.Fatal("second holder acquired a held domain")
			default:
			}
			locks.Unlock(DomainDNS)
			<-acquired
		})
	})
}

func TestHandle(t *testing.T) {
	Convey("Handle", t, func() {
		pool := NewPool()

		Convey("Performs a GET and returns the body", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("hello"))
			}))
			defer srv.Close()

			body, err := pool.Handle().Do(Request{Method: http.MethodGet, URL: srv.URL})
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "hello")
		})

		Convey("Posts form payloads with basic auth", func() {
			var gotAuth, gotBody, gotType string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, pass, _ := r.BasicAuth()
				gotAuth = user + ":" + pass
				gotType = r.Header.Get("Content-Type")
				_ = r.ParseForm()
				gotBody = r.PostForm.Get("data")
			}))
			defer srv.Close()

			form := url.Values{}
			form.Set("data", "<entry></entry>")
			_, err := pool.Handle().Do(Request{
				Method:   http.MethodPost,
				URL:      srv.URL,
				Form:     form,
				Username: "user",
				Password: "secret",
			})
			So(err, ShouldBeNil)
			So(gotAuth, ShouldEqual, "user:secret")
			So(gotType, ShouldEqual, "application/x-www-form-urlencoded")
			So(gotBody, ShouldEqual, "<entry></entry>")
		})

		Convey("Surfaces non-2xx responses as StatusError", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer srv.Close()

			_, err := pool.Handle().Do(Request{Method: http.MethodGet, URL: srv.URL})
			var se *StatusError
			So(errors.As(err, &se), ShouldBeTrue)
			So(se.Code, ShouldEqual, http.StatusUnauthorized)
			So(se.Error(), ShouldContainSubstring, "401")
		})

		Convey("Cookies set by one handle are visible to the next", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if c, err := r.Cookie("session"); err == nil {
					_, _ = w.Write([]byte(c.Value))
					return
				}
				http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
			}))
			defer srv.Close()

			_, err := pool.Handle().Do(Request{Method: http.MethodGet, URL: srv.URL})
			So(err, ShouldBeNil)

			body, err := pool.Handle().Do(Request{Method: http.MethodGet, URL: srv.URL})
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "abc")
		})

		Convey("Concurrent handles share the pool safely", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			}))
			defer srv.Close()

			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					body, err := pool.Handle().Do(Request{Method: http.MethodGet, URL: srv.URL})
					if err != nil || string(body) != "ok" {
						t.Errorf("handle failed: %v %q", err, body)
					}
				}()
			}
			wg.Wait()
		})
	})
}
