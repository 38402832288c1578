package registration

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"signupweb/internal/signup"
)

// SignUpAPI is the part of the Cognito client used for registration.
type SignUpAPI interface {
	SignUp(ctx context.Context, params *cognito.SignUpInput, optFns ...func(*cognito.Options)) (*cognito.SignUpOutput, error)
}

// CognitoRegistrar registers accounts in a Cognito user pool.
type CognitoRegistrar struct {
	client   SignUpAPI
	clientId string
}

func NewCognitoRegistrar(client SignUpAPI, clientId string) *CognitoRegistrar {
	return &CognitoRegistrar{client: client, clientId: clientId}
}

// NewCognitoRegistrarFromEnvironment loads the default AWS config chain.
func NewCognitoRegistrarFromEnvironment(ctx context.Context, clientId string) (*CognitoRegistrar, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewCognitoRegistrar(cognito.NewFromConfig(awsCfg), clientId), nil
}

func (r *CognitoRegistrar) Register(ctx context.Context, draft signup.Draft) signup.Result {
	input := &cognito.SignUpInput{
		ClientId: aws.String(r.clientId),
		Password: aws.String(draft.Password),
		Username: aws.String(draft.Email),
		UserAttributes: []types.AttributeType{
			{
				Name:  aws.String("email"),
				Value: aws.String(draft.Email),
			},
			{
				Name:  aws.String("name"),
				Value: aws.String(draft.Name),
			},
		},
	}
	if ip := clientIPFromContext(ctx); ip != "" {
		input.UserContextData = &types.UserContextDataType{
			IpAddress: aws.String(ip),
		}
	}

	out, err := r.client.SignUp(ctx, input)
	if err != nil {
		return cognitoFailure(err)
	}

	return signup.Registered{User: signup.User{
		ID:    aws.ToString(out.UserSub),
		Email: draft.Email,
		Name:  draft.Name,
	}}
}

func cognitoFailure(err error) signup.Result {
	var exists *types.UsernameExistsException
	if errors.As(err, &exists) {
		return signup.Rejected{Status: http.StatusConflict, Message: exists.ErrorMessage()}
	}

	var badPassword *types.InvalidPasswordException
	if errors.As(err, &badPassword) {
		return signup.ValidationFailed{
			Status: http.StatusUnprocessableEntity,
			Fields: map[string][]string{signup.FieldPassword: {badPassword.ErrorMessage()}},
		}
	}

	var badParam *types.InvalidParameterException
	if errors.As(err, &badParam) {
		return signup.Rejected{Status: http.StatusBadRequest, Message: badParam.ErrorMessage()}
	}

	fiberlog.Error("cognito sign up: ", err)
	return signup.TransportFailed{Err: err}
}
