// Package envcheck checks environment variables against rules declared in a
// YAML file, so a deployment can be rejected before the service starts.
//
// # Rules
//
//	variables:
//	  - name: DATABASE_URL
//	    required: true
//	    type: url
//	    secret: true
//	  - name: HTTP_PORT
//	    default: "8080"
//	    type: int
//	    min: 1
//	    max: 65535
//	  - name: APP_ENV
//	    required: true
//	    patterns: ["development", "staging", "production"]
//	  - name: JWT_SECRET
//	    required: true
//	    not_empty: true
//	    forbidden: ["changeme"]
//	    min: 32
//	    secret: true
//
// Unset variables without a default are skipped unless required. Checks run
// in a fixed order: not_empty, patterns, equals, forbidden, then type
// conversion and min/max. For strings min/max bound the length, for durations
// they are in seconds.
//
// # Architecture
//
// Every variable is checked by its own pessimistic validator from
// pkg/validate, so the first failed check of a variable is reported and the
// remaining variables are still checked. Type conversions go through
// validate.MapErr; uuid values are parsed with github.com/google/uuid.
//
// # Usage
//
//	rules, err := envcheck.LoadRules("env.rules.yaml")
//	if err != nil {
//	    return err
//	}
//	report := envcheck.Check(rules, os.LookupEnv)
//	for _, res := range report.Failed() {
//	    fmt.Println(res.Name, res.Err)
//	}
//
// # Error Handling
//
// LoadRules wraps failures with ErrReadingRules, ErrParsingRules or
// ErrInvalidRules. A rule that misuses a validator, for example a pattern
// that does not compile, shows up as a *validate.ConfigurationError in its
// Result; Report.Misconfigured reports whether any such result exists.
package envcheck
