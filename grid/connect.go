package grid

import "github.com/beltforge/layoutcore/machine"

// Connect validates and registers conn, assigning it conn.ID if empty (via
// NextConnectionID). It enforces:
//   - both machines exist,
//   - source/target are not the same machine,
//   - the referenced port indices exist on their machine's output/input face,
//   - neither port already belongs to another connection.
//
// On success the connection is stored and can be looked up via Connection.
// No belt path is created; call a router to find and Apply one.
// Complexity: O(ports on the two machines' faces).
func (s *State) Connect(conn machine.Connection) (machine.Connection, error) {
	if conn.SourceMachine == conn.TargetMachine {
		return machine.Connection{}, ErrSelfConnection
	}
	src, ok := s.machines[conn.SourceMachine]
	if !ok {
		return machine.Connection{}, ErrMachineNotFound
	}
	tgt, ok := s.machines[conn.TargetMachine]
	if !ok {
		return machine.Connection{}, ErrMachineNotFound
	}

	_, srcOutputs, err := machine.Ports(src)
	if err != nil {
		return machine.Connection{}, err
	}
	if conn.SourcePort < 0 || conn.SourcePort >= len(srcOutputs) {
		return machine.Connection{}, ErrPortIndexOutOfRange
	}

	tgtInputs, _, err := machine.Ports(tgt)
	if err != nil {
		return machine.Connection{}, err
	}
	if conn.TargetPort < 0 || conn.TargetPort >= len(tgtInputs) {
		return machine.Connection{}, ErrPortIndexOutOfRange
	}

	srcKey := portKey{machineID: conn.SourceMachine, role: machine.Output, index: conn.SourcePort}
	if _, used := s.usedPorts[srcKey]; used {
		return machine.Connection{}, ErrPortAlreadyUsed
	}
	tgtKey := portKey{machineID: conn.TargetMachine, role: machine.Input, index: conn.TargetPort}
	if _, used := s.usedPorts[tgtKey]; used {
		return machine.Connection{}, ErrPortAlreadyUsed
	}

	if conn.ID == "" {
		conn.ID = s.NextConnectionID()
	}
	s.connections[conn.ID] = conn
	s.usedPorts[srcKey] = conn.ID
	s.usedPorts[tgtKey] = conn.ID

	return conn, nil
}

// Disconnect removes a connection, tearing down its belt path (if any)
// first. Returns false if connID is unknown.
func (s *State) Disconnect(connID string) bool {
	if _, ok := s.connections[connID]; !ok {
		return false
	}
	s.RemoveBeltPath(connID)
	s.deleteConnection(connID)
	return true
}

// deleteConnection removes the connection and its port reservations without
// touching any belt path; callers must tear down the path themselves first.
func (s *State) deleteConnection(connID string) {
	c, ok := s.connections[connID]
	if !ok {
		return
	}
	delete(s.usedPorts, portKey{machineID: c.SourceMachine, role: machine.Output, index: c.SourcePort})
	delete(s.usedPorts, portKey{machineID: c.TargetMachine, role: machine.Input, index: c.TargetPort})
	delete(s.connections, connID)
}

// SourcePort resolves a connection's source Port.
func (s *State) SourcePort(conn machine.Connection) (machine.Port, error) {
	m, ok := s.machines[conn.SourceMachine]
	if !ok {
		return machine.Port{}, ErrMachineNotFound
	}
	_, outputs, err := machine.Ports(m)
	if err != nil {
		return machine.Port{}, err
	}
	if conn.SourcePort < 0 || conn.SourcePort >= len(outputs) {
		return machine.Port{}, ErrPortIndexOutOfRange
	}
	return outputs[conn.SourcePort], nil
}

// TargetPort resolves a connection's target Port.
func (s *State) TargetPort(conn machine.Connection) (machine.Port, error) {
	m, ok := s.machines[conn.TargetMachine]
	if !ok {
		return machine.Port{}, ErrMachineNotFound
	}
	inputs, _, err := machine.Ports(m)
	if err != nil {
		return machine.Port{}, err
	}
	if conn.TargetPort < 0 || conn.TargetPort >= len(inputs) {
		return machine.Port{}, ErrPortIndexOutOfRange
	}
	return inputs[conn.TargetPort], nil
}
