package version

const Value = "1.0.0"
