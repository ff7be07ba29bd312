package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	env := newTestEnv(t, testConfig(t), nil)

	_, raw := env.do(t, http.MethodPost, "/api/posts", `{"username":"alice","content":"hi"}`)
	postID := decodeJSON(t, raw)["id"].(string)
	base := "/api/posts/" + postID + "/comments"

	resp, raw := env.do(t, http.MethodGet, base, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))

	resp, raw = env.do(t, http.MethodPost, base, `{"username":"bob","content":"first"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	first := decodeJSON(t, raw)
	assert.Equal(t, postID, first["postId"])
	assert.Regexp(t, timestampPattern, first["createdAt"])
	assert.Nil(t, first["updatedAt"])
	firstID := first["id"].(string)

	_, raw = env.do(t, http.MethodPost, base, `{"username":"carol","content":"second"}`)
	secondID := decodeJSON(t, raw)["id"].(string)

	resp, raw = env.do(t, http.MethodGet, base, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	comments := decodeJSONArray(t, raw)
	require.Len(t, comments, 2)
	assert.Equal(t, firstID, comments[0]["id"])
	assert.Equal(t, secondID, comments[1]["id"])

	resp, raw = env.do(t, http.MethodGet, base+"/"+firstID, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, first, decodeJSON(t, raw))

	resp, raw = env.do(t, http.MethodPatch, base+"/"+firstID, `{"username":"carol","content":"nope"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"code":400,"message":"username mismatch"}`, string(raw))

	resp, raw = env.do(t, http.MethodPatch, base+"/"+firstID, `{"username":"bob","content":"edited"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	edited := decodeJSON(t, raw)
	assert.Equal(t, "edited", edited["content"])
	assert.Regexp(t, timestampPattern, edited["updatedAt"])

	resp, _ = env.do(t, http.MethodDelete, base+"/"+firstID, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, base+"/"+firstID, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"code":404,"message":"Comment not found"}`, string(raw))

	resp, raw = env.do(t, http.MethodDelete, base+"/"+firstID, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"code":404,"message":"Comment not found"}`, string(raw))

	_, raw = env.do(t, http.MethodGet, "/api/posts/"+postID, "")
	assert.EqualValues(t, 1, decodeJSON(t, raw)["commentsCount"])
}

func TestComments_ScopedToPost(t *testing.T) {
	env := newTestEnv(t, testConfig(t), nil)

	_, raw := env.do(t, http.MethodPost, "/api/posts", `{"username":"alice","content":"one"}`)
	postA := decodeJSON(t, raw)["id"].(string)
	_, raw = env.do(t, http.MethodPost, "/api/posts", `{"username":"alice","content":"two"}`)
	postB := decodeJSON(t, raw)["id"].(string)
	_, raw = env.do(t, http.MethodPost, "/api/posts/"+postA+"/comments", `{"username":"bob","content":"c"}`)
	commentID := decodeJSON(t, raw)["id"].(string)

	resp, _ := env.do(t, http.MethodGet, "/api/posts/"+postB+"/comments/"+commentID, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/posts/"+postB+"/comments/"+commentID, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/posts/"+postA+"/comments/"+commentID, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateComment_Errors(t *testing.T) {
	env := newTestEnv(t, testConfig(t), nil)

	resp, raw := env.do(t, http.MethodPost, "/api/posts/missing/comments", `{"username":"bob","content":"c"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"code":404,"message":"Post not found"}`, string(raw))

	resp, raw = env.do(t, http.MethodPost, "/api/posts/missing/comments", `{"username":"bob"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"code":400,"message":"username and content are required"}`, string(raw))

	resp, raw = env.do(t, http.MethodGet, "/api/posts/missing/comments", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"code":404,"message":"Post not found"}`, string(raw))
}
