package equations

// Boltzmann is the Boltzmann constant in J/K (2019 SI exact value). It is
// the only physical constant the equations depend on besides the parameter
// records themselves.
const Boltzmann = 1.380649e-23
