//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/2beens/gymlog/internal/calendar"
	"github.com/2beens/gymlog/internal/session"
	"github.com/2beens/gymlog/internal/storage"
	"github.com/2beens/gymlog/internal/workouts"
)

const (
	testBodyPart       = "胸"
	testExercise       = "ベンチプレス"
	testCustomExercise = "ケーブルクロス"
)

type viewResponse struct {
	Title        string          `json:"title"`
	Cells        []calendar.Cell `json:"cells"`
	Mode         session.Mode    `json:"mode"`
	SelectedDate string          `json:"selectedDate"`
	DayLogs      []workouts.Set  `json:"dayLogs"`
	BodyParts    []string        `json:"bodyParts"`
	Editing      *struct {
		ID int64 `json:"id"`
	} `json:"editing"`
	Message *session.StatusMessage `json:"message"`
}

func (s *IntegrationTestSuite) do(method, endpoint, path string, body any) *http.Response {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, endpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Origin", testAllowedOrigin)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *IntegrationTestSuite) doView(method, endpoint, path string, body any) viewResponse {
	resp := s.do(method, endpoint, path, body)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var view viewResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func (s *IntegrationTestSuite) getLogs(endpoint, date string) []workouts.Set {
	resp := s.do(http.MethodGet, endpoint, "/logs?date="+date, nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var sets []workouts.Set
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&sets))
	return sets
}

// runTrackerFlow drives a full day of logging against one server and
// returns the sets left on the selected date.
func (s *IntegrationTestSuite) runTrackerFlow(endpoint, date string) []workouts.Set {
	view := s.doView(http.MethodGet, endpoint, "/calendar", nil)
	s.NotEmpty(view.Title)
	s.NotEmpty(view.Cells)
	s.Equal([]string{"胸", "背中", "足", "肩", "腕"}, view.BodyParts)

	view = s.doView(http.MethodPost, endpoint, "/calendar/select", map[string]string{"date": date})
	s.Equal(session.DateSelected, view.Mode)
	s.Equal(date, view.SelectedDate)
	s.Empty(view.DayLogs)

	view = s.doView(http.MethodPost, endpoint, "/logs", map[string]any{
		"bodyPart": testBodyPart,
		"exercise": testExercise,
		"sets": []map[string]string{
			{"weight": "100", "reps": "5"},
			{"weight": "", "reps": ""},
			{"weight": "80", "reps": "8"},
		},
	})
	s.Require().Len(view.DayLogs, 2)
	s.Require().NotNil(view.Message)
	s.Equal("2セット追加しました（重量か回数が正しくない1セットはスキップ）", view.Message.Text)
	s.True(view.Message.IsError)

	sets := s.getLogs(endpoint, date)
	s.Require().Len(sets, 2)
	s.NotEqual(sets[0].ID, sets[1].ID)
	first, second := sets[0], sets[1]
	s.Equal(100.0, first.Weight)
	s.Equal(5, first.Reps)

	view = s.doView(http.MethodPost, endpoint, fmt.Sprintf("/logs/%d/edit", first.ID), nil)
	s.Equal(session.Editing, view.Mode)
	s.Require().NotNil(view.Editing)
	s.Equal(first.ID, view.Editing.ID)

	view = s.doView(http.MethodPut, endpoint, "/logs", map[string]string{
		"bodyPart": testBodyPart,
		"exercise": testExercise,
		"weight":   "105",
		"reps":     "5",
	})
	s.Equal(session.DateSelected, view.Mode)
	s.Require().NotNil(view.Message)
	s.Equal("更新しました", view.Message.Text)

	view = s.doView(http.MethodDelete, endpoint, fmt.Sprintf("/logs/%d", second.ID), nil)
	s.Require().NotNil(view.Message)
	s.Equal("削除しました", view.Message.Text)
	s.Require().Len(view.DayLogs, 1)
	s.Equal(first.ID, view.DayLogs[0].ID)
	s.Equal(105.0, view.DayLogs[0].Weight)

	view = s.doView(http.MethodPost, endpoint, "/exercises", map[string]string{
		"bodyPart": testBodyPart,
		"name":     "  " + testCustomExercise + " ",
	})
	s.Require().NotNil(view.Message)
	s.Equal("種目を追加しました", view.Message.Text)

	resp := s.do(http.MethodGet, endpoint, "/exercises/"+url.PathEscape(testBodyPart), nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var names []string
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&names))
	s.Contains(names, testExercise)
	s.Equal(testCustomExercise, names[len(names)-1])

	return s.getLogs(endpoint, date)
}

func (s *IntegrationTestSuite) TestRedisBackend() {
	sets := s.runTrackerFlow(redisServerEndpoint, "2024-03-05")
	s.Require().Len(sets, 1)

	blob, err := s.redisClient.Get(context.Background(), storage.PrefixedKey(testKeyPrefix, storage.LogsKey)).Bytes()
	s.Require().NoError(err)

	var stored []workouts.Set
	s.Require().NoError(json.Unmarshal(blob, &stored))
	s.Equal(sets, stored)

	catalogBlob, err := s.redisClient.Get(context.Background(), storage.PrefixedKey(testKeyPrefix, storage.ExercisesKey)).Bytes()
	s.Require().NoError(err)
	s.Contains(string(catalogBlob), testCustomExercise)
}

func (s *IntegrationTestSuite) TestPostgresBackend() {
	sets := s.runTrackerFlow(postgresServerEndpoint, "2024-04-10")
	s.Require().Len(sets, 1)

	var blob string
	err := s.DB.QueryRow(`SELECT value FROM kv_blob WHERE key = $1;`, storage.PrefixedKey(testKeyPrefix, storage.LogsKey)).Scan(&blob)
	s.Require().NoError(err)

	var stored []workouts.Set
	s.Require().NoError(json.Unmarshal([]byte(blob), &stored))
	s.Equal(sets, stored)

	var catalogRows int
	err = s.DB.QueryRow(`SELECT COUNT(*) FROM kv_blob WHERE key = $1;`, storage.PrefixedKey(testKeyPrefix, storage.ExercisesKey)).Scan(&catalogRows)
	s.Require().NoError(err)
	s.Equal(1, catalogRows)
}

func (s *IntegrationTestSuite) TestCorsForbiddenOrigin() {
	req, err := http.NewRequest(http.MethodGet, redisServerEndpoint+"/calendar", nil)
	s.Require().NoError(err)
	req.Header.Set("Origin", "http://evil.example.com")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestUnknownPath() {
	resp := s.do(http.MethodGet, postgresServerEndpoint, "/nope", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
