// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package policy

// condaForgePackages lists packages known to be installable from
// conda-forge under their PyPI name. The list covers the common scientific
// Python stack; projects with a longer tail supply a policy file or a
// channel snapshot database instead.
var condaForgePackages = []string{
	"black",
	"click",
	"coverage",
	"cython",
	"dask",
	"flake8",
	"h5py",
	"ipython",
	"joblib",
	"jupyter",
	"jupyterlab",
	"matplotlib",
	"mypy",
	"networkx",
	"numba",
	"numpy",
	"packaging",
	"pandas",
	"pillow",
	"pip",
	"plotly",
	"pre-commit",
	"pyarrow",
	"pytest",
	"pytest-cov",
	"pytest-xdist",
	"pyyaml",
	"requests",
	"rich",
	"ruff",
	"scikit-image",
	"scikit-learn",
	"scipy",
	"seaborn",
	"setuptools",
	"sphinx",
	"statsmodels",
	"sympy",
	"tqdm",
	"typing-extensions",
	"wheel",
	"xarray",
}

// condaForgeRenames maps PyPI names to the conda-forge package name when
// the two differ.
var condaForgeRenames = map[string]string{
	"opencv-python": "opencv",
	"tables":        "pytables",
	"torch":         "pytorch",
}

// Default returns the built-in classification table.
func Default() *Table {
	t := New()
	for _, name := range condaForgePackages {
		t.AddConda(name, "")
	}
	for name, rename := range condaForgeRenames {
		t.AddConda(name, rename)
	}
	return t
}
