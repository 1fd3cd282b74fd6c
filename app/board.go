package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

const tasksKey = "/api/tasks"

// BoardView renders the Kanban board: one column per status, cards draggable
// between columns. Dropping a card rewrites the cache optimistically, sends
// the PATCH, and rolls back if the request fails.
type BoardView struct {
	app.Compo

	user   *User
	cache  *queryCache
	loaded bool
	errMsg string

	dragTaskID string

	// Login form state, shown while unauthenticated.
	email    string
	password string

	// New card form state.
	newTitle string
}

func (b *BoardView) OnInit() {
	b.cache = newQueryCache()
}

func (b *BoardView) OnMount(ctx app.Context) {
	b.loadSession(ctx)
}

func (b *BoardView) loadSession(ctx app.Context) {
	ctx.Async(func() {
		resp, err := http.Get("/api/auth/session")
		if err != nil {
			app.Log("error loading session:", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			ctx.Dispatch(func(ctx app.Context) {
				b.user = nil
				b.loaded = true
			})
			return
		}

		var payload struct {
			User User `json:"user"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			app.Log("error decoding session:", err)
			return
		}
		ctx.Dispatch(func(ctx app.Context) {
			b.user = &payload.User
			b.loaded = true
			b.loadTasks(ctx)
		})
	})
}

func (b *BoardView) loadTasks(ctx app.Context) {
	ctx.Async(func() {
		resp, err := http.Get(tasksKey)
		if err != nil {
			app.Log("error loading tasks:", err)
			return
		}
		defer resp.Body.Close()

		var payload struct {
			Tasks []Task `json:"tasks"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			app.Log("error decoding tasks:", err)
			return
		}
		ctx.Dispatch(func(ctx app.Context) {
			b.cache.set(tasksKey, payload.Tasks)
		})
	})
}

func (b *BoardView) onLogin(ctx app.Context, e app.Event) {
	e.PreventDefault()
	email, password := b.email, b.password

	ctx.Async(func() {
		body, _ := json.Marshal(map[string]string{"email": email, "password": password})
		resp, err := http.Post("/api/auth/login", "application/json", bytes.NewReader(body))
		if err != nil {
			app.Log("error logging in:", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			ctx.Dispatch(func(ctx app.Context) {
				b.errMsg = "invalid email or password"
			})
			return
		}
		var payload struct {
			User User `json:"user"`
		}
		json.NewDecoder(resp.Body).Decode(&payload)
		ctx.Dispatch(func(ctx app.Context) {
			b.user = &payload.User
			b.errMsg = ""
			b.loadTasks(ctx)
		})
	})
}

func (b *BoardView) onCreateTask(ctx app.Context, e app.Event) {
	e.PreventDefault()
	title := b.newTitle
	if title == "" {
		return
	}
	b.newTitle = ""

	ctx.Async(func() {
		body, _ := json.Marshal(map[string]string{"title": title})
		resp, err := http.Post("/api/tasks", "application/json", bytes.NewReader(body))
		if err != nil {
			app.Log("error creating task:", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			app.Log("create task failed with status", resp.StatusCode)
			return
		}
		ctx.Dispatch(func(ctx app.Context) {
			b.cache.invalidate(tasksKey)
			b.loadTasks(ctx)
		})
	})
}

func (b *BoardView) onDragStart(taskID string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		b.dragTaskID = taskID
	}
}

func (b *BoardView) onDragOver(ctx app.Context, e app.Event) {
	e.PreventDefault()
}

// onDrop maps the target column to a status, applies it to the cache
// optimistically, and issues the PATCH. On failure the pre-drag snapshot is
// restored; on success the affected list is invalidated and refetched.
func (b *BoardView) onDrop(status string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.PreventDefault()
		taskID := b.dragTaskID
		b.dragTaskID = ""
		if taskID == "" {
			return
		}

		tasks, ok := b.cache.get(tasksKey)
		if !ok {
			return
		}
		var current string
		for _, t := range tasks {
			if t.ID == taskID {
				current = t.Status
			}
		}
		if current == "" || current == status {
			return
		}

		snap := b.cache.setTaskStatus(taskID, status)

		ctx.Async(func() {
			body, _ := json.Marshal(map[string]string{"status": status})
			req, err := http.NewRequest(http.MethodPatch, tasksKey+"/"+taskID, bytes.NewReader(body))
			if err != nil {
				app.Log("error building request:", err)
				ctx.Dispatch(func(ctx app.Context) { b.cache.restore(snap) })
				return
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil || resp.StatusCode != http.StatusOK {
				if resp != nil {
					resp.Body.Close()
				}
				ctx.Dispatch(func(ctx app.Context) {
					b.cache.restore(snap)
					b.errMsg = "could not move task"
				})
				return
			}
			resp.Body.Close()

			ctx.Dispatch(func(ctx app.Context) {
				b.errMsg = ""
				b.cache.invalidate(tasksKey)
				b.loadTasks(ctx)
			})
		})
	}
}

func (b *BoardView) Render() app.UI {
	if !b.loaded {
		return app.Div().Class("board-loading").Text("Loading…")
	}
	if b.user == nil {
		return b.renderLogin()
	}
	return b.renderBoard()
}

func (b *BoardView) renderLogin() app.UI {
	return app.Div().Class("login").Body(
		app.H1().Text("taskdeck"),
		app.If(b.errMsg != "", func() app.UI {
			return app.P().Class("error").Text(b.errMsg)
		}),
		app.Form().OnSubmit(b.onLogin).Body(
			app.Input().Type("email").Placeholder("Email").Value(b.email).
				OnInput(func(ctx app.Context, e app.Event) {
					b.email = ctx.JSSrc().Get("value").String()
				}),
			app.Input().Type("password").Placeholder("Password").Value(b.password).
				OnInput(func(ctx app.Context, e app.Event) {
					b.password = ctx.JSSrc().Get("value").String()
				}),
			app.Button().Type("submit").Text("Log in"),
		),
	)
}

func (b *BoardView) renderBoard() app.UI {
	tasks, _ := b.cache.get(tasksKey)

	return app.Div().Class("board").Body(
		app.Header().Body(
			app.H1().Text("taskdeck"),
			app.If(b.errMsg != "", func() app.UI {
				return app.Span().Class("error").Text(b.errMsg)
			}),
			app.Form().OnSubmit(b.onCreateTask).Body(
				app.Input().Type("text").Placeholder("New task…").Value(b.newTitle).
					OnInput(func(ctx app.Context, e app.Event) {
						b.newTitle = ctx.JSSrc().Get("value").String()
					}),
				app.Button().Type("submit").Text("Add"),
			),
		),
		app.Div().Class("columns").Body(
			app.Range(boardColumns).Slice(func(i int) app.UI {
				col := boardColumns[i]
				var cards []Task
				for _, t := range tasks {
					if t.Status == col.Status {
						cards = append(cards, t)
					}
				}
				return app.Div().Class("column").
					OnDragOver(b.onDragOver).
					OnDrop(b.onDrop(col.Status)).
					Body(
						app.H2().Text(col.Label),
						app.Range(cards).Slice(func(j int) app.UI {
							return b.renderCard(cards[j])
						}),
					)
			}),
		),
	)
}

func (b *BoardView) renderCard(t Task) app.UI {
	card := app.Div().Class("card").Draggable(true).
		OnDragStart(b.onDragStart(t.ID)).
		Body(
			app.Div().Class("card-title").Text(t.Title),
			app.If(t.Priority != nil, func() app.UI {
				return app.Span().Class("badge", "badge-"+*t.Priority).Text(*t.Priority)
			}),
			app.If(t.DueDate != nil, func() app.UI {
				return app.Span().Class("due").Text(fmt.Sprintf("due %s", (*t.DueDate)[:10]))
			}),
		)
	return card
}
