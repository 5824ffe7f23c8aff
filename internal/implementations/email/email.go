package email

import (
	"context"
	"encoding/json"
	"net/url"

	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                    string
	accountActivationTemplate string
	accountActivationBaseUrl  url.URL
	passwordResetTemplate     string
	passwordResetBaseUrl      url.URL
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	accountActivationTemplate string,
	accountActivationBaseUrl url.URL,
	passwordResetTemplate string,
	passwordResetBaseUrl url.URL,
) *EmailSender {
	return &EmailSender{
		ses:                       ses.NewFromConfig(awsConfig),
		sender:                    sender,
		accountActivationTemplate: accountActivationTemplate,
		accountActivationBaseUrl:  accountActivationBaseUrl,
		passwordResetTemplate:     passwordResetTemplate,
		passwordResetBaseUrl:      passwordResetBaseUrl,
	}
}

func (s *EmailSender) SendActivationCode(ctx context.Context, u user.User, code token.Code) error {
	templateParamsBytes, err := json.Marshal(
		accountActivationTemplateParams{
			ActivationCode: string(code),
			ActivationUrl:  s.accountActivationBaseUrl.JoinPath(string(code)).String(),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.accountActivationTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

func (s *EmailSender) SendPasswordResetCode(ctx context.Context, u user.User, code token.Code) error {
	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{
			PasswordResetUrl: s.passwordResetBaseUrl.JoinPath(string(code)).String(),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type accountActivationTemplateParams struct {
	ActivationCode string `json:"activationCode"`
	ActivationUrl  string `json:"activationUrl"`
}

type passwordResetTemplateParams struct {
	PasswordResetUrl string `json:"passwordResetUrl"`
}
