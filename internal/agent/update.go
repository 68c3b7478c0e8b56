// internal/agent/update.go
//
// The two tabular update rules. The episode loop is shared; the rule decides
// how the TD target at the next state is formed:
//
//   Q-learning (off-policy): target uses the best available action value at
//   the next state, regardless of what the policy will actually do there.
//
//   Sarsa (on-policy): the next action is chosen first, by the same ε-greedy
//   policy, and the target uses that action's value. The chosen action is
//   then carried into the next loop iteration rather than re-derived.

package agent

import "fmt"

// UpdateRule selects the learning algorithm for an RL agent.
type UpdateRule int

const (
	QLearning UpdateRule = iota
	Sarsa
)

func (r UpdateRule) String() string {
	switch r {
	case QLearning:
		return "qlearning"
	case Sarsa:
		return "sarsa"
	default:
		return fmt.Sprintf("UpdateRule(%d)", int(r))
	}
}
