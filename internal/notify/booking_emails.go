package notify

import (
	"fmt"

	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

// BookingNotifier sends the post-payment notifications. It is an interface
// so the payment reconciler can be tested without a mail server.
type BookingNotifier interface {
	PaymentConfirmed(b *models.ConsultationBooking)
}

// EmailBookingNotifier queues the client confirmation and the admin alert
// on the dispatcher.
type EmailBookingNotifier struct {
	dispatcher *Dispatcher
	adminEmail string
}

func NewEmailBookingNotifier(dispatcher *Dispatcher, adminEmail string) *EmailBookingNotifier {
	return &EmailBookingNotifier{
		dispatcher: dispatcher,
		adminEmail: adminEmail,
	}
}

func (n *EmailBookingNotifier) PaymentConfirmed(b *models.ConsultationBooking) {
	n.dispatcher.Dispatch(Message{
		To:      b.ClientEmail,
		Subject: fmt.Sprintf("Booking Confirmed - %s | LightField Legal", b.Reference),
		HTML:    clientConfirmationHTML(b),
	})

	n.dispatcher.Dispatch(Message{
		To:      n.adminEmail,
		Subject: fmt.Sprintf("New Paid Booking - %s | %s", b.Reference, b.ServiceName()),
		HTML:    adminNotificationHTML(b),
	})
}

func clientConfirmationHTML(b *models.ConsultationBooking) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:'Segoe UI',Tahoma,Geneva,sans-serif;color:#333;background:#f5f5f5;margin:0;padding:0;">
  <div style="max-width:600px;margin:0 auto;background:#fff;border-radius:12px;overflow:hidden;">
    <div style="background:linear-gradient(135deg,#b87333,#d4a76a);padding:40px 30px;text-align:center;">
      <h1 style="color:#fff;margin:0;font-size:24px;">Booking Confirmed</h1>
      <p style="color:rgba(255,255,255,0.9);margin:8px 0 0;font-size:14px;">Thank you for choosing LightField Legal Practitioners</p>
    </div>
    <div style="padding:30px;">
      <p>Dear %s,</p>
      <p>Your consultation booking has been received and payment confirmed. Our team will review your booking and confirm your appointment shortly.</p>
      <div style="background:#f8f4ef;border:2px dashed #b87333;border-radius:8px;padding:16px;text-align:center;margin:20px 0;">
        <div style="font-size:12px;text-transform:uppercase;color:#888;letter-spacing:1px;">Booking Reference</div>
        <div style="font-size:24px;font-weight:700;color:#b87333;margin-top:4px;">%s</div>
      </div>
      <div style="background:#fafafa;border-radius:8px;padding:20px;margin:20px 0;">
        <p><strong>Service:</strong> %s</p>
        <p><strong>Date:</strong> %s</p>
        <p><strong>Time:</strong> %s</p>
        <p><strong>Amount Paid:</strong> %s</p>
      </div>
      <p>Please save this reference number for your records. We'll confirm your appointment via email.</p>
      <p>Best regards,<br><strong>LightField Legal Practitioners</strong></p>
    </div>
  </div>
</body>
</html>`,
		b.ClientName,
		b.Reference,
		b.ServiceName(),
		b.PreferredDate.Format("January 2, 2006"),
		b.PreferredTime,
		b.FormattedAmount(),
	)
}

func adminNotificationHTML(b *models.ConsultationBooking) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:'Segoe UI',Tahoma,Geneva,sans-serif;color:#333;">
  <div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:30px;">
    <h2 style="color:#b87333;">New Booking Received</h2>
    <p>A new consultation booking has been paid and is awaiting confirmation.</p>
    <div style="background:#f8f4ef;border-radius:8px;padding:16px;margin:16px 0;">
      <p><strong>Reference:</strong> %s</p>
      <p><strong>Client:</strong> %s</p>
      <p><strong>Email:</strong> %s</p>
      <p><strong>Phone:</strong> %s</p>
      <p><strong>Service:</strong> %s</p>
      <p><strong>Date:</strong> %s</p>
      <p><strong>Time:</strong> %s</p>
      <p><strong>Amount:</strong> %s</p>
    </div>
    <p>Log in to the admin panel to confirm or manage this booking.</p>
  </div>
</body>
</html>`,
		b.Reference,
		b.ClientName,
		b.ClientEmail,
		b.ClientPhone,
		b.ServiceName(),
		b.PreferredDate.Format("2006-01-02"),
		b.PreferredTime,
		b.FormattedAmount(),
	)
}
