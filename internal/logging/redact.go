package logging

// Redact masks a credential for logging, keeping a short identifying
// prefix. API keys and signatures must never appear whole in log output.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****"
}
