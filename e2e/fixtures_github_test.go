//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeRepo struct {
	Name       string `json:"name"`
	Owner      struct {
		Login string `json:"login"`
	} `json:"owner"`
	HTMLURL    string `json:"html_url"`
	Stars      int    `json:"stargazers_count"`
	Forks      int    `json:"forks_count"`
	OpenIssues int    `json:"open_issues_count"`
}

type fakeUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Followers int    `json:"followers"`
}

// fakeGitHub serves the subset of the GitHub REST API gitbattle uses
type fakeGitHub struct {
	srv *httptest.Server

	mu       sync.Mutex
	searches map[string]int
	failing  map[string]bool
}

func repo(owner, name string, stars int) fakeRepo {
	r := fakeRepo{Name: name, Stars: stars, Forks: stars / 10, OpenIssues: 3}
	r.Owner.Login = owner
	r.HTMLURL = "https://github.com/" + owner + "/" + name
	return r
}

var popularFixtures = map[string][]fakeRepo{
	"":           {repo("freeCodeCamp", "freeCodeCamp", 400000), repo("facebook", "react", 230000)},
	"JavaScript": {repo("facebook", "react", 230000)},
	"Ruby":       {repo("rails", "rails", 56000)},
	"Java":       {repo("spring-projects", "spring-boot", 75000)},
	"CSS":        {repo("twbs", "bootstrap", 170000)},
	"Python":     {repo("python", "cpython", 63000)},
}

var userFixtures = map[string]fakeUser{
	"alice": {Login: "alice", Name: "Alice", Followers: 100},
	"bob":   {Login: "bob", Name: "Bob", Followers: 2},
}

var userRepoFixtures = map[string][]fakeRepo{
	"alice": {repo("alice", "tools", 10)},
	"bob":   {repo("bob", "dotfiles", 1)},
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	f := &fakeGitHub{
		searches: make(map[string]int),
		failing:  make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/repositories", func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		for _, part := range strings.Fields(r.URL.Query().Get("q")) {
			if v, ok := strings.CutPrefix(part, "language:"); ok {
				lang = v
			}
		}
		f.mu.Lock()
		f.searches[lang]++
		fail := f.failing[lang]
		f.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusUnprocessableEntity)
			writeJSON(w, map[string]string{"message": "Validation Failed"})
			return
		}
		items := popularFixtures[lang]
		writeJSON(w, map[string]any{"total_count": len(items), "items": items})
	})
	mux.HandleFunc("GET /users/{login}", func(w http.ResponseWriter, r *http.Request) {
		u, ok := userFixtures[r.PathValue("login")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"message": "Not Found"})
			return
		}
		writeJSON(w, u)
	})
	mux.HandleFunc("GET /users/{login}/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, userRepoFixtures[r.PathValue("login")])
	})

	f.srv = httptest.NewServer(mux)
	return f
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeGitHub) URL() string { return f.srv.URL + "/" }

func (f *fakeGitHub) Close() { f.srv.Close() }

// Searches reports how often the popular search ran for lang, "" meaning all
func (f *fakeGitHub) Searches(lang string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches[lang]
}

// Fail makes searches for lang return an error
func (f *fakeGitHub) Fail(lang string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[lang] = true
}
