package mail

import "fmt"

const (
	OTPSubject     = "EcoCoin Email Verification - OTP Inside 🌿"
	WelcomeSubject = "Welcome to EcoCoin - your deposit PIN"
)

// OTPBody 回傳驗證碼信件的純文字與 HTML 內容
func OTPBody(code string, minutes int) (string, string) {
	plain := fmt.Sprintf("Your EcoCoin One-Time Password is %s. It expires in %d minutes.", code, minutes)
	html := fmt.Sprintf(`<h2>Welcome to EcoCoin!</h2>
<p>Your One-Time Password (OTP) is: <strong>%s</strong></p>
<p>Please do not share this code with anyone. The OTP will expire in %d minutes.</p>
<p>Team EcoCoin 🌱</p>`, code, minutes)
	return plain, html
}

// WelcomeBody 歡迎信，附上投遞機台使用的 secret PIN
func WelcomeBody(name, pin string) (string, string) {
	plain := fmt.Sprintf("Hi %s, your registration is complete. Your deposit PIN is %s.", name, pin)
	html := fmt.Sprintf(`<h2>Hi %s, welcome to EcoCoin!</h2>
<p>Your deposit PIN is <strong>%s</strong>. Enter it at any EcoCoin kiosk to collect points.</p>
<p>Team EcoCoin 🌱</p>`, name, pin)
	return plain, html
}
