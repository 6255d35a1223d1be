// Package environment names the deployment environment and carries it through
// configuration, request contexts and log records.
//
//	env := environment.Parse(cfg.Env) // "prod" -> Production
//	r.Use(environment.Middleware(env))
//
//	if environment.IsProduction(ctx) {
//	    // hide internal error details from toasts
//	}
package environment
