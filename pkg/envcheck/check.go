package envcheck

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/hope/pkg/validate"
)

// Mask replaces the value of secret variables in reports.
const Mask = "******"

// Lookup returns the value of a variable and whether it is set. os.LookupEnv
// is a Lookup.
type Lookup func(name string) (string, bool)

// MapLookup returns a Lookup backed by m.
func MapLookup(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// Result is the outcome of checking one variable.
type Result struct {
	Name string
	// Value is the checked value, Mask for secrets, empty when unset.
	Value string
	// Set is true when the variable or its default supplied a value.
	Set bool
	// Err is the first failed check, nil when the variable is valid.
	Err error
}

// OK reports whether the variable passed every check.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report holds one Result per rule, in rule order.
type Report struct {
	Results []Result
}

// OK reports whether every variable passed.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Misconfigured reports whether any failure comes from a broken rule, such
// as a pattern that does not compile, rather than from a bad value.
func (r *Report) Misconfigured() bool {
	for _, res := range r.Results {
		if validate.IsConfigurationError(res.Err) {
			return true
		}
	}
	return false
}

// Option configures Check.
type Option func(*checker)

// WithLogger logs every failed check to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *checker) {
		c.strategy = validate.WithLogger(c.strategy, l)
	}
}

type checker struct {
	strategy validate.Strategy
}

// Check validates every variable of rs against lookup. It never stops early:
// each variable gets its own Result.
func Check(rs *RuleSet, lookup Lookup, opts ...Option) *Report {
	c := &checker{strategy: validate.Pessimistic()}
	for _, opt := range opts {
		opt(c)
	}

	report := &Report{Results: make([]Result, 0, len(rs.Variables))}
	for _, rule := range rs.Variables {
		report.Results = append(report.Results, c.check(rule, lookup))
	}
	return report
}

func (c *checker) check(rule Rule, lookup Lookup) Result {
	res := Result{Name: rule.Name}

	var raw *string
	if v, ok := lookup(rule.Name); ok {
		raw = &v
	}

	v := validate.New(raw, c.strategy).Named(rule.Name)
	if rule.Default != nil {
		v.OrElse(rule.Default)
	}
	if v.Value() == nil {
		if rule.Required {
			res.Err = v.IsNotNull().Err()
		}
		return res
	}

	res.Set = true
	res.Value = *v.Value()
	if rule.Secret && res.Value != "" {
		res.Value = Mask
	}

	s := validate.Map(v, func(p *string) string { return *p })
	if rule.NotEmpty {
		s.IsNotNullOrEmpty()
	}
	if rule.Patterns != nil {
		s.MatchesAny(rule.Patterns...)
	}
	if rule.Equals != nil {
		s.IsEqualTo(*rule.Equals)
	}
	for _, f := range rule.Forbidden {
		s.IsNotEqualTo(f)
	}
	if s.Err() != nil {
		res.Err = s.Err()
		return res
	}

	res.Err = checkType(s, rule)
	return res
}

// checkType converts the value to the rule's type and applies range checks.
func checkType(s *validate.Validator[string], rule Rule) error {
	name := rule.Name

	switch rule.Type {
	case TypeInt:
		n := validate.MapErr(s, parse(name, "an integer", func(v string) (int64, error) {
			return strconv.ParseInt(v, 10, 64)
		}))
		return inRange(validate.Map(n, func(i int64) float64 { return float64(i) }), rule, name)

	case TypeFloat:
		n := validate.MapErr(s, parse(name, "a number", func(v string) (float64, error) {
			return strconv.ParseFloat(v, 64)
		}))
		return inRange(n, rule, name)

	case TypeBool:
		return validate.MapErr(s, parse(name, "a boolean", strconv.ParseBool)).Err()

	case TypeDuration:
		d := validate.MapErr(s, parse(name, "a duration", time.ParseDuration))
		return inRange(validate.Map(d, time.Duration.Seconds), rule, name)

	case TypeUUID:
		return validate.MapErr(s, parse(name, "a UUID", uuid.Parse)).Err()

	case TypeURL:
		return validate.MapErr(s, parse(name, "a URL", url.ParseRequestURI)).
			IsTrue(func(u *url.URL) bool { return u.Scheme != "" && u.Host != "" },
				"%s must be an absolute URL", name).
			Err()

	default:
		n := validate.Map(s, func(v string) float64 { return float64(utf8.RuneCountInString(v)) })
		return inRange(n, rule, "length of "+name)
	}
}

// parse adapts a conversion function so its error becomes a checked
// validation failure naming the expected kind.
func parse[T any](name, kind string, fn func(string) (T, error)) func(string) (T, error) {
	return func(v string) (T, error) {
		out, err := fn(v)
		if err != nil {
			return out, validate.NewCheckedError(fmt.Sprintf("%s must be %s", name, kind)).Wrap(err)
		}
		return out, nil
	}
}

func inRange(v *validate.Validator[float64], rule Rule, subject string) error {
	if rule.Min != nil {
		lower := *rule.Min
		v.IsTrue(func(n float64) bool { return n >= lower }, "%s must be at least %s", subject, formatFloat(lower))
	}
	if rule.Max != nil {
		upper := *rule.Max
		v.IsTrue(func(n float64) bool { return n <= upper }, "%s must be at most %s", subject, formatFloat(upper))
	}
	return v.Err()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
