package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var paymentReminderTmpl = template.Must(template.New("payment_reminder").Parse(`
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Recordatorio de Pago</h2>
    <p>Hola <strong>{{.AlumnoNombre}}</strong>,</p>
    <p>Este es un recordatorio amigable de que tu mensualidad de entrenamiento est&aacute; pr&oacute;xima a vencer.</p>
    <div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <p><strong>Coach:</strong> {{.CoachNombre}}</p>
      <p><strong>Fecha de vencimiento:</strong> {{.Fecha}}</p>
    </div>
    <p>Por favor, ponte en contacto con tu coach para coordinar el pago.</p>
    <p>&iexcl;Gracias por confiar en nosotros para tu entrenamiento!</p>
    <hr style="margin: 30px 0; border: none; border-top: 1px solid #e5e7eb;">
    <p style="font-size: 12px; color: #6b7280;">
      Este es un mensaje autom&aacute;tico de FitTrack. Si no deseas recibir estos recordatorios,
      contacta a tu coach para desactivar las notificaciones.
    </p>
  </div>
</body>
</html>`))

// PaymentReminder builds the payment-reminder email for one student.
func PaymentReminder(to, alumnoNombre, coachNombre string, now time.Time) (Message, error) {
	var buf bytes.Buffer
	err := paymentReminderTmpl.Execute(&buf, map[string]string{
		"AlumnoNombre": alumnoNombre,
		"CoachNombre":  coachNombre,
		"Fecha":        now.Format("02/01/2006"),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "Recordatorio de Pago - FitTrack",
		HTML:    buf.String(),
	}, nil
}

var quotaIncreaseTmpl = template.Must(template.New("quota_increase").Parse(`
<h2>Actualizaci&oacute;n de Cuota - {{.CoachNombre}}</h2>
<p>Hola {{.AlumnoNombre}},</p>
<p>Te informamos que a partir del pr&oacute;ximo mes, la cuota ser&aacute; de <strong>${{.NewAmount}}</strong>.</p>
{{if .Mensaje}}<p>{{.Mensaje}}</p>{{end}}
<p>Gracias por tu comprensi&oacute;n.</p>
<p>Saludos,<br>{{.CoachNombre}}</p>`))

// QuotaIncrease builds the quota-change notice for one student.
func QuotaIncrease(to, alumnoNombre, coachNombre string, newAmount float64, mensaje string) (Message, error) {
	var buf bytes.Buffer
	err := quotaIncreaseTmpl.Execute(&buf, map[string]string{
		"AlumnoNombre": alumnoNombre,
		"CoachNombre":  coachNombre,
		"NewAmount":    fmt.Sprintf("%.2f", newAmount),
		"Mensaje":      mensaje,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Actualización de Cuota - %s", coachNombre),
		HTML:    buf.String(),
	}, nil
}

var absenceNoticeTmpl = template.Must(template.New("absence_notice").Parse(`
<h2>Aviso de Ausencia - {{.CoachNombre}}</h2>
<p>Hola {{.AlumnoNombre}},</p>
<p>Te informamos que estar&eacute; ausente desde el <strong>{{.StartDate}}</strong> hasta el <strong>{{.EndDate}}</strong>.</p>
<p><strong>Motivo:</strong> {{.Reason}}</p>
{{if .Mensaje}}<p>{{.Mensaje}}</p>{{end}}
<p>Durante este per&iacute;odo no habr&aacute; entrenamientos. Nos pondremos en contacto para reprogramar.</p>
<p>Gracias por tu comprensi&oacute;n.</p>
<p>Saludos,<br>{{.CoachNombre}}</p>`))

// AbsenceNotice builds the coach-absence notice for one student.
func AbsenceNotice(to, alumnoNombre, coachNombre, startDate, endDate, reason, mensaje string) (Message, error) {
	var buf bytes.Buffer
	err := absenceNoticeTmpl.Execute(&buf, map[string]string{
		"AlumnoNombre": alumnoNombre,
		"CoachNombre":  coachNombre,
		"StartDate":    startDate,
		"EndDate":      endDate,
		"Reason":       reason,
		"Mensaje":      mensaje,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Aviso de Ausencia - %s", coachNombre),
		HTML:    buf.String(),
	}, nil
}
