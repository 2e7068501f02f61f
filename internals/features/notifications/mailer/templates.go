package mailer

import (
	"fmt"

	"hoh_backend/internals/configs"
)

// buildEmail merakit subject + body HTML untuk satu job.
// Job type yang tidak dikenal = permanent failure (tanpa retry).
func buildEmail(job Job) (subject, html string, err error) {
	name := job.Data["name"]
	if name == "" {
		name = "Sahabat"
	}

	switch job.Type {
	case JobWelcome:
		subject = "Selamat datang di House of Hope"
		html = fmt.Sprintf(`
			<h2>Halo %s 👋</h2>
			<p>Akun kamu di dashboard House of Hope sudah aktif.
			Silakan login dengan email ini.</p>`, name)
		return subject, html, nil

	case JobResetPassword:
		token := job.Data["token"]
		if token == "" {
			return "", "", fmt.Errorf("job reset_password tanpa token")
		}
		resetURL := fmt.Sprintf("%s/reset-password?token=%s",
			configs.GetEnv("FRONTEND_BASE_URL", "http://localhost:5173"), token)
		subject = "Reset password akun House of Hope"
		html = fmt.Sprintf(`
			<h2>Halo %s</h2>
			<p>Kami menerima permintaan reset password untuk akun kamu.</p>
			<p><a href="%s">Klik di sini untuk reset password</a> (berlaku 1 jam).</p>
			<p>Kalau bukan kamu yang minta, abaikan email ini.</p>`, name, resetURL)
		return subject, html, nil

	case JobPasswordChanged:
		subject = "Password akun kamu baru saja diganti"
		html = fmt.Sprintf(`
			<h2>Halo %s</h2>
			<p>Password akun House of Hope kamu baru saja diganti.
			Kalau ini bukan kamu, segera hubungi admin.</p>`, name)
		return subject, html, nil

	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownJobType, job.Type)
	}
}
