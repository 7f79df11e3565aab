// Package conceptflow provides an engine for concept workflows: trees of
// model-backed and function-backed steps that read and write named text
// concepts in a shared registry.
//
// Steps are composed with Chain (sequential) and Threads (one batch that
// reads a snapshot and publishes together) orchestrators, either in Go or
// declaratively in YAML. End-users typically interact with the engine via
// the Service facade exposed by the root package:
//
//	srv := conceptflow.New(conceptflow.WithModel("echo", llm.NewEcho("echo")))
//	rt := srv.Runtime()
//	wf, _ := rt.LoadWorkflow(ctx, "otters.yaml")
//	run, _ := rt.RunWorkflow(ctx, wf, map[string]string{"topic": "otters"})
//	fmt.Println(run.Values()["summary"])
//
// For more details see the individual sub-packages.
package conceptflow
