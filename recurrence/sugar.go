package recurrence

// Symbolic sugar for the most common recurrences, carried forward from the
// original frequency vocabulary this package's expression syntax was
// distilled from.
const (
	secondlyExpr = "* * * * * * *"
	minutelyExpr = "0 * * * * * *"
	hourlyExpr   = "0 0 * * * * *"
	dailyExpr    = "0 0 0 * * * *"
)

// Secondly fires once every second, forever.
func Secondly() (Schedule, error) { return Repeated(secondlyExpr) }

// Minutely fires once at the top of every minute, forever.
func Minutely() (Schedule, error) { return Repeated(minutelyExpr) }

// Hourly fires once at the top of every hour, forever.
func Hourly() (Schedule, error) { return Repeated(hourlyExpr) }

// Daily fires once at midnight every day, forever.
func Daily() (Schedule, error) { return Repeated(dailyExpr) }
