/*
Package formflow is a resumable form-journey engine for multi-page
applications, built for the Approved Premises application a probation
caseworker fills in on behalf of a person leaving custody.

A journey is a registry of sections, tasks and pages. Each page is a small
type owning its validation, its persistable answers and its navigation;
the engine owns everything around it: loading the application artifact,
constructing the page, running validation, persisting the allowlisted
answers with a single write, and resolving where to go next. Because
navigation is replayed from the stored answers, an application can be
closed and resumed at any point with nothing lost.

# Architecture

The engine is hexagonal. Core semantics live in pkg/domain and
pkg/registry; persistence and upstream lookups are ports
(pkg/ports) with in-memory and Redis adapters (pkg/adapters);
the page lifecycle service wires them together. Transports — the JSON
API in pkg/adapters/http, or any host application — talk to the
root Engine only.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/probationforms/formflow"
		"github.com/probationforms/formflow/pkg/adapters/memory"
		"github.com/probationforms/formflow/pkg/domain"
		"github.com/probationforms/formflow/pkg/pages/basicinformation"
		"github.com/probationforms/formflow/pkg/registry"
	)

	func main() {
		reg := registry.Must(registry.Section{
			ID:    "before-you-start",
			Title: "Before you start",
			Tasks: []registry.Task{basicinformation.Task()},
		})
		eng := formflow.New(reg, memory.NewStore())

		ctx := context.Background()
		app, err := eng.CreateApplication(ctx, "token", "X320741")
		if err != nil {
			log.Fatal(err)
		}

		// Save one page and follow the redirect.
		result, err := eng.UpdatePage(ctx, domain.Request{
			Token:      "token",
			ArtifactID: app.ID,
			TaskID:     "basic-information",
			PageID:     "sentence-type",
			Body:       map[string]any{"sentenceType": "standardDeterminate"},
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("next page:", result.Next)
	}
*/
package formflow
