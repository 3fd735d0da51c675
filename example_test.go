package tba_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	tba "github.com/frc1418/go-tba"
)

func ExampleNew() {
	client, _ := tba.New("your-read-key")

	_ = client // use client for API calls
	// Output:
}

func ExampleNewWithConfig() {
	// Trusted writes and a per-minute request budget
	client, _ := tba.NewWithConfig(&tba.ClientConfig{
		AuthKey:            "your-read-key",
		AuthID:             "your-auth-id",
		AuthSecret:         "your-auth-secret",
		EventKey:           "2019cmptx",
		RateLimitPerMinute: 600,
	})

	_ = client // use client with custom config
	// Output:
}

func ExampleClient_Team() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"key": "frc1418", "nickname": "Vae Victis", "rookie_year": 2004}`))
	}))
	defer server.Close()

	client, _ := tba.NewWithConfig(&tba.ClientConfig{AuthKey: "your-read-key", BaseURL: server.URL})

	team, err := client.Team(context.Background(), tba.TeamNumber(1418), tba.Simple)
	if err != nil {
		fmt.Println(err)
		return
	}

	nickname, _ := team.Str("nickname")
	rookieYear, _ := team.Int("rookie_year")
	fmt.Printf("%s since %d\n", nickname, rookieYear)

	if _, err := team.Get("website"); err != nil {
		fmt.Println(err)
	}
	// Output:
	// Vae Victis since 2004
	// record has no field "website"
}

func ExampleIfModifiedSince() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Last-Modified", "Sat, 20 Apr 2019 18:00:00 GMT")
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client, _ := tba.NewWithConfig(&tba.ClientConfig{AuthKey: "your-read-key", BaseURL: server.URL})
	since := time.Date(2019, time.April, 20, 18, 0, 0, 0, time.UTC)

	var meta tba.ResponseMeta
	events, err := client.TeamEvents(context.Background(), tba.TeamNumber(1418), 2019, tba.Full,
		tba.IfModifiedSince(since), tba.WithResponseMeta(&meta))

	fmt.Println(len(events), err, meta.NotModified, meta.LastModified)
	// Output:
	// 0 <nil> true Sat, 20 Apr 2019 18:00:00 GMT
}

func ExampleMatchKey() {
	key, _ := tba.MatchKey(tba.MatchSpec{Year: 2017, Event: "chcmp", Type: tba.SemiFinal, Number: 2, Round: 1})
	fmt.Println(key)

	key, _ = tba.MatchKey(tba.MatchSpec{Event: "2019cmptx", Number: 12})
	fmt.Println(key)
	// Output:
	// 2017chcmp_sf2m1
	// 2019cmptx_qm12
}
