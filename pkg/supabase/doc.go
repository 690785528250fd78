// Package supabase is a minimal client for the slices of the Supabase REST
// surface this service consumes: GoTrue token introspection and credential
// exchange, PostgREST table access, and object storage.
//
// It deliberately covers only the documented endpoints Taskdeck calls; it is
// not a general SDK. One Client is constructed at startup and injected into
// every component that talks to the platform.
//
// # Authentication
//
//	user, err := client.GetUser(ctx, accessToken)          // token introspection
//	user, err := client.AdminCreateUser(ctx, email, pw)    // signup (service role)
//	session, err := client.SignInWithPassword(ctx, email, pw)
//
// # Table access
//
//	var tasks []Task
//	err := client.From("tasks").
//		Eq("user_id", userID).
//		Eq("completed", "true").
//		OrderDesc("created_at").
//		Select(ctx, &tasks)
//
// Single-object reads use PostgREST object negotiation; zero matches come
// back as ErrNotFound:
//
//	err := client.From("tasks").Eq("id", id).Eq("user_id", userID).
//		SelectSingle(ctx, &task)
//
// # Object storage
//
//	err := client.UploadObject(ctx, "avatars", path, data, "image/png", true)
//	url := client.PublicURL("avatars", path)
//
// # Errors
//
// Platform-level failures are *APIError carrying the HTTP status and the
// platform's message. Transport failures (unreachable host, timeout) are
// plain wrapped errors. Zero-row single-object responses are ErrNotFound.
package supabase
