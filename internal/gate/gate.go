package gate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/serroba/telegram-bff/internal/botapi"
	"github.com/serroba/telegram-bff/internal/credential"
	"github.com/serroba/telegram-bff/internal/response"
	"go.uber.org/zap"
)

// Messages returned when a request is rejected before dispatch.
const (
	MsgMissingFields = "Missing required fields: "
	MsgInvalidToken  = "Invalid bot token format"
	MsgInvalidAction = "Invalid action"
)

// Gate runs the payload checks for an operation and, when they pass,
// performs exactly one Bot API call.
type Gate struct {
	client  botapi.Invoker
	logger  *zap.Logger
	actions map[string]Operation
}

// New creates a gate dispatching through client. The execute endpoint
// can reach every operation returned by Operations.
func New(client botapi.Invoker, logger *zap.Logger) *Gate {
	ops := Operations()
	actions := make(map[string]Operation, len(ops))

	for _, op := range ops {
		actions[op.Name] = op
	}

	return &Gate{client: client, logger: logger, actions: actions}
}

// Action looks up an operation by its inbound name.
func (g *Gate) Action(name string) (Operation, bool) {
	op, ok := g.actions[name]

	return op, ok
}

// Run validates params against op and forwards them to the Bot API.
func (g *Gate) Run(ctx context.Context, op Operation, params Params) *response.Output {
	token, out := g.precheck(op, params)
	if out != nil {
		return out
	}

	return g.dispatch(ctx, op, token, params, op.SuccessMessage, op.FailureMessage)
}

// Execute resolves params["action"] to an operation and runs it.
// The action's own required fields are checked after the token.
func (g *Gate) Execute(ctx context.Context, params Params) *response.Output {
	token, out := g.precheck(ExecuteOperation(), params)
	if out != nil {
		return out
	}

	name, _ := params.StringField("action")

	op, ok := g.Action(name)
	if !ok {
		g.reject(ActionExecute, MsgInvalidAction)

		return response.Fail(http.StatusBadRequest, MsgInvalidAction, fmt.Sprintf("unknown action %q", name))
	}

	if out := g.checkFields(op, params); out != nil {
		return out
	}

	if out := g.validate(op, params); out != nil {
		return out
	}

	return g.dispatch(ctx, op, token, params,
		name+" executed successfully",
		"Failed to execute "+name,
	)
}

func (g *Gate) precheck(op Operation, params Params) (string, *response.Output) {
	if out := g.checkFields(op, params); out != nil {
		return "", out
	}

	if !credential.Valid(params["token"]) {
		g.reject(op.Name, MsgInvalidToken)

		return "", response.Fail(http.StatusBadRequest, MsgInvalidToken, "")
	}

	token, _ := params.StringField("token")

	return token, g.validate(op, params)
}

func (g *Gate) checkFields(op Operation, params Params) *response.Output {
	missing := MissingFields(params, op.RequiredFields)
	if len(missing) == 0 {
		return nil
	}

	msg := MsgMissingFields + strings.Join(missing, ", ")
	g.reject(op.Name, msg)

	return response.Fail(http.StatusBadRequest, msg, "")
}

func (g *Gate) validate(op Operation, params Params) *response.Output {
	if op.Validate == nil {
		return nil
	}

	if err := op.Validate(params); err != nil {
		g.reject(op.Name, err.Error())

		return response.Fail(http.StatusBadRequest, err.Error(), "")
	}

	return nil
}

func (g *Gate) dispatch(ctx context.Context, op Operation, token string, params Params, okMsg, failMsg string) *response.Output {
	var payload any
	if op.Build != nil {
		payload = op.Build(params)
	}

	env := g.client.Invoke(ctx, token, op.Method, payload)

	return Outcome(env, okMsg, failMsg)
}

// Outcome maps a Bot API envelope to the response returned to the caller:
// success is 200, transport and 5xx failures are 500, and any other
// rejection is 400 carrying the remote description and code.
func Outcome(env botapi.Envelope, okMsg, failMsg string) *response.Output {
	if env.Success {
		var data any
		if len(env.Data) > 0 {
			data = env.Data
		}

		return response.OK(data, okMsg)
	}

	status := http.StatusBadRequest
	if env.Failed() {
		status = http.StatusInternalServerError
	}

	out := response.Fail(status, failMsg, env.Error)
	out.Body.ErrorCode = env.ErrorCode

	return out
}

func (g *Gate) reject(op, reason string) {
	g.logger.Debug("request rejected",
		zap.String("operation", op),
		zap.String("reason", reason),
	)
}
